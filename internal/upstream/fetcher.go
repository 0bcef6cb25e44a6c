// Package upstream retrieves the billing payload and decides between the
// network and the cache. The policy prioritizes availability over
// freshness: every path terminates in a usable, possibly empty result, and
// no error ever reaches the render path.
package upstream

import (
	"context"
	"log/slog"
	"time"

	"sgccwidget/internal/cache"
	"sgccwidget/internal/settings"
	"sgccwidget/pkg/models"
)

// CacheKey is the storage key holding the payload snapshot.
const CacheKey = "sgcc_data_cache"

// CacheTTL is how long a snapshot stays fresh.
const CacheTTL = 4 * time.Hour

// Source produces the full multi-account payload.
type Source interface {
	FetchAll(ctx context.Context) ([]models.AccountRecord, error)
}

// Result is the fetched payload and the epoch-millisecond time it was
// fetched at.
type Result struct {
	Data      []models.AccountRecord
	Timestamp int64
}

// Fetcher orchestrates cache reads, network retrieval and
// fallback-on-failure.
type Fetcher struct {
	source Source
	cache  *cache.Store
	log    *slog.Logger
	now    func() time.Time
}

// New returns a fetcher over source and cacheStore. A nil logger means
// slog.Default.
func New(source Source, cacheStore *cache.Store, log *slog.Logger) *Fetcher {
	if log == nil {
		log = slog.Default()
	}
	return &Fetcher{source: source, cache: cacheStore, log: log, now: time.Now}
}

// Fetch returns the account payload. A cached snapshot younger than
// CacheTTL is returned verbatim without touching the network unless force
// is set; on network failure the previous snapshot is returned regardless
// of age, and with no snapshot at all the result is empty. Fetch never
// fails.
func (f *Fetcher) Fetch(ctx context.Context, force bool) Result {
	env, cached := f.cache.Read(CacheKey)
	if cached && !force && env.Fresh(f.now(), CacheTTL) {
		f.log.Debug("using cached data",
			"age", f.now().Sub(time.UnixMilli(env.Timestamp)).Round(time.Second),
		)
		return Result{Data: env.Data, Timestamp: env.Timestamp}
	}

	data, err := f.source.FetchAll(ctx)
	if err == nil {
		f.cache.Write(CacheKey, data)
		return Result{Data: data, Timestamp: f.now().UnixMilli()}
	}

	f.log.Warn("network request failed", "error", err)
	if cached {
		return Result{Data: env.Data, Timestamp: env.Timestamp}
	}
	return Result{Data: []models.AccountRecord{}, Timestamp: f.now().UnixMilli()}
}

// SelectAccount clamps the configured account index into the fetched
// sequence and carries the fetch time through. An empty payload yields a
// zero-valued record stamped with the current time, so downstream
// derivations have no absent-data path.
func SelectAccount(result Result, st settings.Settings) models.SelectedAccount {
	if len(result.Data) == 0 {
		return models.SelectedAccount{
			AccountRecord:  models.EmptyAccountRecord(),
			LastUpdateTime: time.Now().UnixMilli(),
		}
	}

	idx := st.AccountIndex
	if idx < 0 {
		idx = 0
	}
	if idx > len(result.Data)-1 {
		idx = len(result.Data) - 1
	}

	return models.SelectedAccount{
		AccountRecord:  result.Data[idx],
		LastUpdateTime: result.Timestamp,
	}
}
