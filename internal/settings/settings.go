// Package settings manages the user-configurable widget settings stored as
// one JSON value in the key/value store. Reads always produce a usable
// Settings: missing or malformed fields are repaired from the defaults
// field-by-field, never by discarding the whole record.
package settings

import (
	"encoding/json"
	"log/slog"

	"sgccwidget/internal/store"
)

// Key is the storage key holding the serialized settings.
const Key = "sgccSettings"

// Chart dimensions.
const (
	DimensionDaily   = "daily"
	DimensionMonthly = "monthly"
)

// Large-widget display ranges.
const (
	Range7Days    = "7days"
	Range30Days   = "30days"
	Range12Months = "12months"
)

// Settings holds the user-configurable widget options.
type Settings struct {
	AccountIndex     int     `json:"accountIndex"`     // which account of the multi-account payload
	BarCount         int     `json:"barCount"`         // chart bar count (7/30)
	Dimension        string  `json:"dimension"`        // daily or monthly
	OneLevelPq       float64 `json:"oneLevelPq"`       // first tariff tier threshold, kWh/year
	TwoLevelPq       float64 `json:"twoLevelPq"`       // second tariff tier threshold, kWh/year
	RefreshInterval  int     `json:"refreshInterval"`  // widget refresh interval in minutes
	LargeWidgetRange string  `json:"largeWidgetRange"` // 7days, 30days or 12months
}

// Defaults returns the statically known default settings.
func Defaults() Settings {
	return Settings{
		AccountIndex:     0,
		BarCount:         7,
		Dimension:        DimensionDaily,
		OneLevelPq:       2160,
		TwoLevelPq:       4800,
		RefreshInterval:  180,
		LargeWidgetRange: Range7Days,
	}
}

// normalize repairs out-of-range or unknown values field-by-field against
// the defaults.
func (s *Settings) normalize() {
	def := Defaults()

	if s.AccountIndex < 0 {
		s.AccountIndex = def.AccountIndex
	}
	if s.BarCount <= 0 {
		s.BarCount = def.BarCount
	}
	if s.Dimension != DimensionDaily && s.Dimension != DimensionMonthly {
		s.Dimension = def.Dimension
	}
	if s.OneLevelPq <= 0 {
		s.OneLevelPq = def.OneLevelPq
	}
	if s.TwoLevelPq <= s.OneLevelPq {
		s.TwoLevelPq = def.TwoLevelPq
		if s.TwoLevelPq <= s.OneLevelPq {
			s.OneLevelPq = def.OneLevelPq
		}
	}
	if s.RefreshInterval <= 0 {
		s.RefreshInterval = def.RefreshInterval
	}
	switch s.LargeWidgetRange {
	case Range7Days, Range30Days, Range12Months:
	default:
		s.LargeWidgetRange = def.LargeWidgetRange
	}
}

// Store reads and writes settings against the key/value store.
type Store struct {
	kv  store.KV
	log *slog.Logger
}

// New returns a settings store over kv. A nil logger means slog.Default.
func New(kv store.KV, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{kv: kv, log: log}
}

// Get returns the persisted settings merged over the defaults. Any storage
// or parse failure degrades to the defaults; Get never fails.
func (s *Store) Get() Settings {
	result := Defaults()

	raw, ok, err := s.kv.Get(Key)
	if err != nil {
		s.log.Warn("reading settings failed, using defaults", "error", err)
		return result
	}
	if !ok {
		return result
	}

	// Decoding over the defaults gives the field-by-field override; unknown
	// extra fields are ignored.
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.log.Warn("parsing settings failed, using defaults", "error", err)
		return Defaults()
	}

	result.normalize()
	return result
}

// Save serializes and persists the settings. Persistence failure is logged
// and swallowed; Save must never crash the caller.
func (s *Store) Save(settings Settings) {
	data, err := json.Marshal(settings)
	if err != nil {
		s.log.Warn("serializing settings failed", "error", err)
		return
	}
	if err := s.kv.Set(Key, string(data)); err != nil {
		s.log.Warn("saving settings failed", "error", err)
	}
}
