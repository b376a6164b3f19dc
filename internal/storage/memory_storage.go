package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// MemoryStorage keeps objects in process memory. It backs local runs without a
// bucket (STORAGE_DRIVER=memory) and tests.
type MemoryStorage struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]Object
	failOn  func(key string) error
}

type Object struct {
	ContentType string
	Data        []byte
}

func NewMemoryStorage(baseURL string) *MemoryStorage {
	if baseURL == "" {
		baseURL = "memory://uploads"
	}
	return &MemoryStorage{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]Object),
	}
}

// FailWith makes Put return the error fn yields for a key. Pass nil to reset.
func (m *MemoryStorage) FailWith(fn func(key string) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failOn = fn
}

func (m *MemoryStorage) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.RLock()
	failOn := m.failOn
	m.mu.RUnlock()
	if failOn != nil {
		if err := failOn(key); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, body)
	if err != nil {
		return "", fmt.Errorf("failed to read object %s: %w", key, err)
	}
	if size > 0 && n != size {
		return "", fmt.Errorf("object %s: read %d bytes, expected %d", key, n, size)
	}

	m.mu.Lock()
	m.objects[key] = Object{ContentType: contentType, Data: buf.Bytes()}
	m.mu.Unlock()

	return fmt.Sprintf("%s/%s", m.baseURL, key), nil
}

func (m *MemoryStorage) Get(key string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj, ok
}

func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
