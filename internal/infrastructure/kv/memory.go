package kv

import (
	"context"
	"sync"
)

// MemoryMedium is a process-local Medium used by tests and the default
// development configuration. Entries do not survive restarts.
type MemoryMedium struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryMedium returns an empty in-memory medium.
func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{entries: make(map[string][]byte)}
}

func (m *MemoryMedium) Get(_ context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.entries[name]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

func (m *MemoryMedium) Put(_ context.Context, name string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(payload))
	copy(stored, payload)
	m.entries[name] = stored
	return nil
}

func (m *MemoryMedium) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, name)
	return nil
}
