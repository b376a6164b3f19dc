package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ikkim/brandsite-backend/internal/db"
	"github.com/ikkim/brandsite-backend/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	return testDB
}

func newTestUploads() (UploadService, *storage.MemoryStorage) {
	store := storage.NewMemoryStorage("https://cdn.test")
	return NewUploadService(store, "brandsite", 1024), store
}

func pngFile(name string) File {
	return File{Name: name, ContentType: "image/png", Size: 4, Body: strings.NewReader("\x89PNG")}
}

type memoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMemoryDenylist() *memoryDenylist {
	return &memoryDenylist{revoked: make(map[string]time.Duration)}
}

func (d *memoryDenylist) RevokeToken(_ context.Context, tokenID string, expiry time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[tokenID] = expiry
	return nil
}

func (d *memoryDenylist) IsTokenRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[tokenID]
	return ok, nil
}

type recordedEvent struct {
	Type    string
	Payload interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(eventType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Type: eventType, Payload: payload})
}

func floatPtr(v float64) *float64 {
	return &v
}
