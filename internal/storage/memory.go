package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps state in process. It is the default backend and the one
// used in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func memoryKey(scope, namespace string) string {
	return scope + "\x00" + namespace
}

func (m *MemoryStore) Read(_ context.Context, scope, namespace string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.data[memoryKey(scope, namespace)]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, true, nil
}

func (m *MemoryStore) Write(_ context.Context, scope, namespace string, payload []byte) error {
	stored := make([]byte, len(payload))
	copy(stored, payload)
	m.mu.Lock()
	m.data[memoryKey(scope, namespace)] = stored
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}
