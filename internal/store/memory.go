package store

import "sync"

// Memory is an in-memory KV, used in tests and wherever persistence is not
// wanted.
type Memory struct {
	mu     sync.Mutex
	values map[string]string

	// FailWrites makes every Set return an error, for exercising the
	// swallow-and-log paths.
	FailWrites error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.values[key] = value
	return nil
}
