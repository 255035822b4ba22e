package store

import "sync"

// Blob defines the interface for durable, string-keyed, whole-value storage.
// Values are written and read as complete blobs; there are no partial updates.
type Blob interface {
	// Get returns the blob stored under key. ok is false when the key has
	// never been written.
	Get(key string) (data string, ok bool, err error)

	// Put stores data under key, replacing any previous value.
	Put(key, data string) error

	Close() error
}

// Memory is an in-process Blob used by tests and as a fallback when no
// database is configured.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory Blob.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[key]
	return data, ok, nil
}

func (m *Memory) Put(key, data string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	return nil
}

func (m *Memory) Close() error { return nil }
