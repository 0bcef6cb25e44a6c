package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sgccwidget/internal/cache"
	"sgccwidget/internal/settings"
	"sgccwidget/internal/store"
	"sgccwidget/pkg/models"
)

type fakeSource struct {
	data  []models.AccountRecord
	err   error
	calls int
}

func (f *fakeSource) FetchAll(ctx context.Context) ([]models.AccountRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func record(balance string) models.AccountRecord {
	return models.AccountRecord{EleBill: &models.BillInfo{SumMoney: models.NewFlex(balance)}}
}

func seedCache(t *testing.T, kv store.KV, timestamp time.Time, data []models.AccountRecord) {
	t.Helper()
	raw, err := json.Marshal(cache.Envelope{Timestamp: timestamp.UnixMilli(), Data: data})
	require.NoError(t, err)
	require.NoError(t, kv.Set(CacheKey, string(raw)))
}

func newTestFetcher(source Source, kv store.KV, now time.Time) *Fetcher {
	f := New(source, cache.New(kv, nil), nil)
	f.now = func() time.Time { return now }
	return f
}

func TestFetchFreshCacheSkipsNetwork(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	kv := store.NewMemory()
	cachedAt := now.Add(-3 * time.Hour)
	seedCache(t, kv, cachedAt, []models.AccountRecord{record("10.00")})

	source := &fakeSource{data: []models.AccountRecord{record("99.99")}}
	result := newTestFetcher(source, kv, now).Fetch(context.Background(), false)

	require.Zero(t, source.calls, "fresh cache must not touch the network")
	require.Equal(t, cachedAt.UnixMilli(), result.Timestamp)
	require.Len(t, result.Data, 1)
	require.Equal(t, "10.00", result.Data[0].Balance().String())
}

func TestFetchStaleCacheGoesToNetwork(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	kv := store.NewMemory()
	seedCache(t, kv, now.Add(-5*time.Hour), []models.AccountRecord{record("10.00")})

	source := &fakeSource{data: []models.AccountRecord{record("99.99")}}
	result := newTestFetcher(source, kv, now).Fetch(context.Background(), false)

	require.Equal(t, 1, source.calls)
	require.Equal(t, now.UnixMilli(), result.Timestamp)
	require.Equal(t, "99.99", result.Data[0].Balance().String())
}

func TestFetchForceBypassesFreshness(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	kv := store.NewMemory()
	seedCache(t, kv, now.Add(-time.Minute), []models.AccountRecord{record("10.00")})

	source := &fakeSource{data: []models.AccountRecord{record("99.99")}}
	result := newTestFetcher(source, kv, now).Fetch(context.Background(), true)

	require.Equal(t, 1, source.calls)
	require.Equal(t, "99.99", result.Data[0].Balance().String())
}

func TestFetchSuccessWritesCache(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	kv := store.NewMemory()

	source := &fakeSource{data: []models.AccountRecord{record("50.00")}}
	newTestFetcher(source, kv, now).Fetch(context.Background(), false)

	raw, ok, err := kv.Get(CacheKey)
	require.NoError(t, err)
	require.True(t, ok)

	var env cache.Envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	require.Len(t, env.Data, 1)
	require.Equal(t, "50.00", env.Data[0].Balance().String())
}

func TestFetchFailureFallsBackToStaleCache(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	kv := store.NewMemory()
	cachedAt := now.Add(-48 * time.Hour) // far beyond the TTL
	seedCache(t, kv, cachedAt, []models.AccountRecord{record("10.00")})

	source := &fakeSource{err: errors.New("connection refused")}
	result := newTestFetcher(source, kv, now).Fetch(context.Background(), false)

	require.Equal(t, 1, source.calls)
	require.Equal(t, cachedAt.UnixMilli(), result.Timestamp)
	require.Equal(t, "10.00", result.Data[0].Balance().String())
}

func TestFetchFailureWithoutCacheReturnsEmpty(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	kv := store.NewMemory()

	source := &fakeSource{err: errors.New("connection refused")}
	result := newTestFetcher(source, kv, now).Fetch(context.Background(), false)

	require.Empty(t, result.Data)
	require.NotNil(t, result.Data)
	require.Equal(t, now.UnixMilli(), result.Timestamp)
}

func TestSelectAccount(t *testing.T) {
	result := Result{
		Data:      []models.AccountRecord{record("1.00"), record("2.00"), record("3.00")},
		Timestamp: 1700000000000,
	}

	tests := []struct {
		name        string
		index       int
		wantBalance string
	}{
		{name: "in range", index: 1, wantBalance: "2.00"},
		{name: "clamped high", index: 10, wantBalance: "3.00"},
		{name: "clamped negative", index: -1, wantBalance: "1.00"},
		{name: "first", index: 0, wantBalance: "1.00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := settings.Defaults()
			st.AccountIndex = tc.index

			got := SelectAccount(result, st)
			require.Equal(t, tc.wantBalance, got.Balance().String())
			require.Equal(t, int64(1700000000000), got.LastUpdateTime)
		})
	}
}

func TestSelectAccountEmptyPayload(t *testing.T) {
	before := time.Now().UnixMilli()
	got := SelectAccount(Result{}, settings.Defaults())

	// Zero-valued record: downstream derivations need no absent-data path.
	require.Equal(t, "0.00", got.Balance().String())
	require.False(t, got.ArrearsOfFees.Bool())
	require.Empty(t, got.MonthlyEntries())
	require.Empty(t, got.DailyEntries())
	require.GreaterOrEqual(t, got.LastUpdateTime, before)
}
