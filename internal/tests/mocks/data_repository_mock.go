package mocks

import (
	"context"
	"sync"
)

// DataRepositoryMock keeps data files in memory. ReadFunc/WriteFunc
// override the in-memory behaviour when set.
type DataRepositoryMock struct {
	ReadFunc  func(ctx context.Context, key string) ([]byte, error)
	WriteFunc func(ctx context.Context, key string, data []byte) error

	mu     sync.Mutex
	files  map[string][]byte
	writes int
}

func (m *DataRepositoryMock) ReadData(ctx context.Context, key string) ([]byte, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (m *DataRepositoryMock) WriteData(ctx context.Context, key string, data []byte) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, key, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[key] = append([]byte(nil), data...)
	m.writes++
	return nil
}

// Raw returns the stored document for key.
func (m *DataRepositoryMock) Raw(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.files[key])
}

func (m *DataRepositoryMock) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
