// Package cache persists timestamped payload snapshots in the key/value
// store. Snapshots are superseded whole on the next successful fetch, never
// merged, so a torn write cannot produce a mixed payload.
package cache

import (
	"encoding/json"
	"log/slog"
	"time"

	"sgccwidget/internal/store"
	"sgccwidget/pkg/models"
)

// Envelope is the stored form: the fetched payload plus the moment it was
// fetched, in epoch milliseconds. Timestamp is never mutated after write.
type Envelope struct {
	Timestamp int64                  `json:"timestamp"`
	Data      []models.AccountRecord `json:"data"`
}

// Fresh reports whether the envelope is younger than maxAge at the given
// time.
func (e Envelope) Fresh(now time.Time, maxAge time.Duration) bool {
	age := now.UnixMilli() - e.Timestamp
	return age < maxAge.Milliseconds()
}

// Store reads and writes envelopes against the key/value store.
type Store struct {
	kv  store.KV
	log *slog.Logger
	now func() time.Time
}

// New returns a cache store over kv. A nil logger means slog.Default.
func New(kv store.KV, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{kv: kv, log: log, now: time.Now}
}

// Read returns the envelope stored under key. A missing key or an
// undecodable value yields ok=false; Read never fails.
func (s *Store) Read(key string) (Envelope, bool) {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		s.log.Warn("reading cache failed", "key", key, "error", err)
		return Envelope{}, false
	}
	if !ok {
		return Envelope{}, false
	}

	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		s.log.Debug("discarding undecodable cache entry", "key", key, "error", err)
		return Envelope{}, false
	}
	return env, true
}

// Write stamps the current time and persists the payload under key.
// Failures are logged and swallowed.
func (s *Store) Write(key string, data []models.AccountRecord) {
	env := Envelope{
		Timestamp: s.now().UnixMilli(),
		Data:      data,
	}

	raw, err := json.Marshal(env)
	if err != nil {
		s.log.Warn("serializing cache entry failed", "key", key, "error", err)
		return
	}
	if err := s.kv.Set(key, string(raw)); err != nil {
		s.log.Warn("writing cache failed", "key", key, "error", err)
	}
}
