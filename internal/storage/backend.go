package storage

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrNotFound is returned by Backend.Get when nothing is stored.
var ErrNotFound = errors.New("snapshot not found")

// Backend stores a single snapshot payload.
type Backend interface {
	// Get returns the stored payload or ErrNotFound.
	Get(ctx context.Context) ([]byte, error)
	// Put replaces the stored payload.
	Put(ctx context.Context, data []byte) error
	// Delete removes the stored payload. Deleting nothing is not an error.
	Delete(ctx context.Context) error
	// Close releases any underlying connection.
	Close() error
}

// MemoryBackend keeps the payload in process memory.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *MemoryBackend {
	return &MemoryBackend{}
}

// Get implements Backend.
func (m *MemoryBackend) Get(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNotFound
	}
	return slices.Clone(m.data), nil
}

// Put implements Backend.
func (m *MemoryBackend) Put(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = slices.Clone(data)
	if m.data == nil {
		m.data = []byte{}
	}
	return nil
}

// Delete implements Backend.
func (m *MemoryBackend) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

// Close implements Backend.
func (m *MemoryBackend) Close() error { return nil }
