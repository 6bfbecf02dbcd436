package storage

import (
	"sync"

	"github.com/pkg/errors"
)

// MemoryKV keeps entries in a map. A positive quota caps the total size of keys plus values in bytes.
type MemoryKV struct {
	mu    sync.RWMutex
	data  map[string]string
	size  int
	quota int
}

func NewMemoryKV(quota int) *MemoryKV {
	return &MemoryKV{data: make(map[string]string), quota: quota}
}

func (m *MemoryKV) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	size := m.size + len(value)
	if old, ok := m.data[key]; ok {
		size -= len(old)
	} else {
		size += len(key)
	}
	if m.quota > 0 && size > m.quota {
		return errors.Wrapf(ErrQuotaExceeded, "set %s (%d of %d bytes)", key, size, m.quota)
	}

	m.data[key] = value
	m.size = size
	return nil
}

func (m *MemoryKV) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.data[key]; ok {
		m.size -= len(key) + len(old)
		delete(m.data, key)
	}
	return nil
}

// Size returns the bytes currently counted against the quota.
func (m *MemoryKV) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.size
}
