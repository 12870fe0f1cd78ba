package app

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"learnlog/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Entry{}, &model.AuditEvent{}))
	return db
}

// fakePublisher records everything published to it.
type fakePublisher struct {
	mu     sync.Mutex
	events []model.EntryEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, event model.EntryEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) published() []model.EntryEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.EntryEvent(nil), f.events...)
}

// fakeListCache is an in-memory stand-in for the Redis entry-list cache.
type fakeListCache struct {
	mu    sync.Mutex
	lists map[uint][]model.Entry
	dirty map[uint]bool
}

func newFakeListCache() *fakeListCache {
	return &fakeListCache{
		lists: make(map[uint][]model.Entry),
		dirty: make(map[uint]bool),
	}
}

func (f *fakeListCache) GetList(_ context.Context, userID uint) ([]model.Entry, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries, ok := f.lists[userID]
	return entries, ok, nil
}

func (f *fakeListCache) SetList(_ context.Context, userID uint, entries []model.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists[userID] = entries
	return nil
}

func (f *fakeListCache) DeleteList(_ context.Context, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.lists, userID)
	return nil
}

func (f *fakeListCache) MarkDirty(_ context.Context, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirty[userID] = true
	return nil
}

func (f *fakeListCache) IsDirty(_ context.Context, userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirty[userID], nil
}
