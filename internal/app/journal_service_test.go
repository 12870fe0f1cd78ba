package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnlog/internal/model"
	"learnlog/internal/repository"
)

type journalFixture struct {
	svc       *JournalService
	auditRepo *repository.AuditEventRepository
	publisher *fakePublisher
	cache     *fakeListCache
}

func newJournalFixture(t *testing.T) *journalFixture {
	t.Helper()
	publisher := &fakePublisher{}
	listCache := newFakeListCache()
	db := newTestDB(t)
	entryRepo := repository.NewEntryRepository(db)
	auditRepo := repository.NewAuditEventRepository(db)
	return &journalFixture{
		svc:       NewJournalService(entryRepo, auditRepo, publisher, listCache),
		auditRepo: auditRepo,
		publisher: publisher,
		cache:     listCache,
	}
}

func dayOneInput(userID uint) EntryInput {
	return EntryInput{
		UserID:    userID,
		Title:     "Day 1",
		Duration:  "2 hours",
		Learnings: "Set up the project",
		Resources: "https://example.com/setup",
		Tags:      "python,flask",
	}
}

func TestJournalServiceCreate(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	entry, err := f.svc.Create(ctx, dayOneInput(1))
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "Day 1", entry.Title)
	assert.WithinDuration(t, time.Now(), entry.EntryDate, time.Second)

	events := f.publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, model.EntryActionCreated, events[0].Action)
	assert.Equal(t, "Day 1", events[0].EntryTitle)
	assert.Equal(t, uint(1), events[0].UserID)

	dirty, _ := f.cache.IsDirty(ctx, 1)
	assert.True(t, dirty)
}

func TestJournalServiceCreateDuplicateTitle(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, dayOneInput(1))
	require.NoError(t, err)

	input := dayOneInput(2)
	input.Tags = "rust"
	_, err = f.svc.Create(ctx, input)
	assert.ErrorIs(t, err, ErrTitleExists)

	// the failed create publishes nothing
	assert.Len(t, f.publisher.published(), 1)
}

func TestJournalServiceCreateRequiresOwner(t *testing.T) {
	f := newJournalFixture(t)

	input := dayOneInput(0)
	_, err := f.svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestJournalServiceTagFilterScenario(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, dayOneInput(1))
	require.NoError(t, err)

	flask, err := f.svc.ListByTag(ctx, 1, "flask")
	require.NoError(t, err)
	require.Len(t, flask, 1)
	assert.Equal(t, "Day 1", flask[0].Title)

	rust, err := f.svc.ListByTag(ctx, 1, "rust")
	require.NoError(t, err)
	assert.Empty(t, rust)
}

func TestJournalServiceListByTagIsSubsetOfList(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	inputs := []EntryInput{
		{UserID: 1, Title: "Day 1", Duration: "1h", Learnings: "a", Resources: "https://e.com", Tags: "python,flask"},
		{UserID: 1, Title: "Day 2", Duration: "1h", Learnings: "b", Resources: "https://e.com", Tags: "go"},
		{UserID: 1, Title: "Day 3", Duration: "1h", Learnings: "c", Resources: "https://e.com", Tags: "python"},
	}
	for _, input := range inputs {
		_, err := f.svc.Create(ctx, input)
		require.NoError(t, err)
	}

	all, err := f.svc.List(ctx, 1)
	require.NoError(t, err)

	tagged, err := f.svc.ListByTag(ctx, 1, "python")
	require.NoError(t, err)

	wantTitles := map[string]bool{}
	for _, entry := range all {
		if entry.HasTag("python") {
			wantTitles[entry.Title] = true
		}
	}
	require.Len(t, tagged, len(wantTitles))
	for _, entry := range tagged {
		assert.True(t, wantTitles[entry.Title])
	}
}

func TestJournalServiceListUsesCleanCache(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	cached := []model.Entry{{UserID: 1, Title: "From cache"}}
	require.NoError(t, f.cache.SetList(ctx, 1, cached))

	entries, err := f.svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "From cache", entries[0].Title)
}

func TestJournalServiceListSkipsDirtyCache(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, dayOneInput(1))
	require.NoError(t, err)

	stale := []model.Entry{{UserID: 1, Title: "Stale"}}
	require.NoError(t, f.cache.SetList(ctx, 1, stale))
	require.NoError(t, f.cache.MarkDirty(ctx, 1))

	entries, err := f.svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Day 1", entries[0].Title)
}

func TestJournalServiceDetail(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, dayOneInput(1))
	require.NoError(t, err)

	entry, err := f.svc.Detail(ctx, "Day 1")
	require.NoError(t, err)
	assert.Equal(t, "Day 1", entry.Title)

	_, err = f.svc.Detail(ctx, "Day 99")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestJournalServiceUpdateMovesTitle(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, dayOneInput(1))
	require.NoError(t, err)

	input := dayOneInput(1)
	input.Title = "Day One"
	updated, err := f.svc.Update(ctx, "Day 1", input)
	require.NoError(t, err)
	assert.Equal(t, "Day One", updated.Title)

	_, err = f.svc.Detail(ctx, "Day 1")
	assert.ErrorIs(t, err, ErrEntryNotFound)

	moved, err := f.svc.Detail(ctx, "Day One")
	require.NoError(t, err)
	assert.Equal(t, "python,flask", moved.Tags)
	assert.Equal(t, "2 hours", moved.Duration)

	events := f.publisher.published()
	require.Len(t, events, 2)
	assert.Equal(t, model.EntryActionUpdated, events[1].Action)
}

func TestJournalServiceUpdateMissingEntry(t *testing.T) {
	f := newJournalFixture(t)

	_, err := f.svc.Update(context.Background(), "No Such Day", dayOneInput(1))
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestJournalServiceDeleteByTitle(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, dayOneInput(1))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteByTitle(ctx, 1, "Day 1"))

	_, err = f.svc.Detail(ctx, "Day 1")
	assert.ErrorIs(t, err, ErrEntryNotFound)

	events := f.publisher.published()
	require.Len(t, events, 2)
	assert.Equal(t, model.EntryActionDeleted, events[1].Action)
}

func TestJournalServiceDeleteByTitleNotFound(t *testing.T) {
	f := newJournalFixture(t)

	err := f.svc.DeleteByTitle(context.Background(), 1, "No Such Day")
	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.Empty(t, f.publisher.published())
}

func TestJournalServiceAuditTrail(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []model.AuditEvent{
		{UserID: 1, Action: model.EntryActionCreated, EntryTitle: "Day 1", OccurredAt: base},
		{UserID: 1, Action: model.EntryActionUpdated, EntryTitle: "Day 1", OccurredAt: base.Add(time.Hour)},
		{UserID: 1, Action: model.EntryActionDeleted, EntryTitle: "Day 1", OccurredAt: base.Add(2 * time.Hour)},
		{UserID: 2, Action: model.EntryActionCreated, EntryTitle: "Other", OccurredAt: base},
	}
	for i := range rows {
		require.NoError(t, f.auditRepo.Create(&rows[i]))
	}

	// newest first, only the owner's rows
	events, err := f.svc.AuditTrail(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, model.EntryActionDeleted, events[0].Action)
	assert.Equal(t, model.EntryActionUpdated, events[1].Action)
	assert.Equal(t, model.EntryActionCreated, events[2].Action)

	limited, err := f.svc.AuditTrail(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, model.EntryActionDeleted, limited[0].Action)

	_, err = f.svc.AuditTrail(ctx, 0, 10)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestJournalServicePublishFailureDoesNotFailRequest(t *testing.T) {
	f := newJournalFixture(t)
	f.publisher.err = assert.AnError

	entry, err := f.svc.Create(context.Background(), dayOneInput(1))
	require.NoError(t, err)
	assert.NotNil(t, entry)
}
