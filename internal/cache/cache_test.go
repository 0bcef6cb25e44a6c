package cache

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sgccwidget/internal/store"
	"sgccwidget/pkg/models"
)

func TestWriteReadRoundTrip(t *testing.T) {
	kv := store.NewMemory()
	s := New(kv, nil)

	fixed := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	data := []models.AccountRecord{
		{EleBill: &models.BillInfo{SumMoney: models.NewFlex("120.50")}},
	}
	s.Write("payload", data)

	env, ok := s.Read("payload")
	require.True(t, ok)
	require.Equal(t, fixed.UnixMilli(), env.Timestamp)
	require.Len(t, env.Data, 1)
	require.Equal(t, "120.50", env.Data[0].Balance().String())
}

func TestReadMissingKey(t *testing.T) {
	s := New(store.NewMemory(), nil)
	_, ok := s.Read("nothing")
	require.False(t, ok)
}

func TestReadCorruptValue(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Set("payload", "{broken"))

	_, ok := New(kv, nil).Read("payload")
	require.False(t, ok)
}

func TestWriteFailureIsSwallowed(t *testing.T) {
	kv := store.NewMemory()
	kv.FailWrites = errors.New("disk full")

	s := New(kv, nil)
	require.NotPanics(t, func() { s.Write("payload", nil) })
}

func TestEnvelopeFresh(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	maxAge := 4 * time.Hour

	tests := []struct {
		name  string
		age   time.Duration
		fresh bool
	}{
		{name: "3h old", age: 3 * time.Hour, fresh: true},
		{name: "just written", age: 0, fresh: true},
		{name: "exactly 4h", age: 4 * time.Hour, fresh: false}, // strict <
		{name: "5h old", age: 5 * time.Hour, fresh: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := Envelope{Timestamp: now.Add(-tc.age).UnixMilli()}
			require.Equal(t, tc.fresh, env.Fresh(now, maxAge))
		})
	}
}

func TestEnvelopeSerializedShape(t *testing.T) {
	// The stored envelope is {timestamp, data}, timestamp in epoch ms.
	env := Envelope{Timestamp: 1700000000000, Data: []models.AccountRecord{}}
	raw, err := json.Marshal(env)
	require.NoError(t, err)
	require.JSONEq(t, `{"timestamp":1700000000000,"data":[]}`, string(raw))
}
