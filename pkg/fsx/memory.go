package fsx

import (
	"bytes"
	"context"
	"io"
	"path"
	"sync"
)

// MemFileSystem keeps files in memory. Used in tests and local runs without S3.
type MemFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemFileSystem creates an empty in-memory file system
func NewMemFileSystem() *MemFileSystem {
	return &MemFileSystem{files: make(map[string][]byte)}
}

func (m *MemFileSystem) ReadFile(_ context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[name]
	if !ok {
		return nil, ErrNotExist
	}
	return bytes.Clone(data), nil
}

func (m *MemFileSystem) WriteFile(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[name] = bytes.Clone(data)
	return nil
}

func (m *MemFileSystem) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	data, err := m.ReadFile(ctx, name)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MemFileSystem) Remove(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[name]; !ok {
		return ErrNotExist
	}
	delete(m.files, name)
	return nil
}

func (m *MemFileSystem) Exists(_ context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.files[name]
	return ok, nil
}

func (m *MemFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}
