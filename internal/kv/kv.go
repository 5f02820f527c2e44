// Package kv defines the local key-value storage the task list persists to.
//
// Backends live in subpackages (badgerkv, sqlitekv); Memory is an
// in-process implementation for tests and throwaway sessions.
package kv

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// Store is a durable key-value store holding opaque blobs.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(key string) ([]byte, error)

	// Set overwrites the value for key.
	Set(key string, value []byte) error

	// Close releases the underlying storage.
	Close() error
}

// Memory is a map-backed Store. Values are copied on the way in and out.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte

	// SetErr, when non-nil, is returned by every Set without writing.
	SetErr error
	// GetErr, when non-nil, is returned by every Get.
	GetErr error
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Get implements Store.
func (m *Memory) Get(key string) ([]byte, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set implements Store.
func (m *Memory) Set(key string, value []byte) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Close implements Store. It is a no-op.
func (m *Memory) Close() error { return nil }
