package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"learnlog/internal/model"
	"learnlog/internal/repository"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrTitleExists   = errors.New("title already exists")
)

// EntryEventPublisher forwards entry lifecycle events to the audit queue.
type EntryEventPublisher interface {
	Publish(ctx context.Context, event model.EntryEvent) error
}

// EntryListCache caches a user's full entry list between writes.
type EntryListCache interface {
	GetList(ctx context.Context, userID uint) ([]model.Entry, bool, error)
	SetList(ctx context.Context, userID uint, entries []model.Entry) error
	DeleteList(ctx context.Context, userID uint) error
	MarkDirty(ctx context.Context, userID uint) error
	IsDirty(ctx context.Context, userID uint) (bool, error)
}

type JournalService struct {
	entryRepo *repository.EntryRepository
	auditRepo *repository.AuditEventRepository
	publisher EntryEventPublisher
	listCache EntryListCache
}

type EntryInput struct {
	UserID    uint
	Title     string
	Duration  string
	Learnings string
	Resources string
	Tags      string
	EntryDate time.Time
}

func NewJournalService(entryRepo *repository.EntryRepository, auditRepo *repository.AuditEventRepository, publisher EntryEventPublisher, listCache EntryListCache) *JournalService {
	return &JournalService{
		entryRepo: entryRepo,
		auditRepo: auditRepo,
		publisher: publisher,
		listCache: listCache,
	}
}

// Create persists a new entry for its owner. A missing entry date defaults
// to now. Audit publishing and cache invalidation are best-effort.
func (s *JournalService) Create(ctx context.Context, input EntryInput) (*model.Entry, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalidInput
	}

	entryDate := input.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	entry := &model.Entry{
		UserID:    input.UserID,
		Title:     title,
		Duration:  input.Duration,
		Learnings: strings.TrimSpace(input.Learnings),
		Resources: input.Resources,
		Tags:      input.Tags,
		EntryDate: entryDate,
	}
	if err := s.entryRepo.Create(entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateTitle) {
			return nil, ErrTitleExists
		}
		return nil, err
	}

	s.invalidateList(ctx, input.UserID)
	s.publishEvent(ctx, model.EntryActionCreated, entry.Title, entry.UserID)
	return entry, nil
}

// List returns the owner's entries ordered by entry date descending,
// serving from the cache when it is present and clean.
func (s *JournalService) List(ctx context.Context, userID uint) ([]model.Entry, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	if s.listCache != nil {
		dirty, err := s.listCache.IsDirty(ctx, userID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.listCache.GetList(ctx, userID); cacheErr == nil && hit {
				return cached, nil
			}
		}
	}

	entries, err := s.entryRepo.ListByOwner(userID)
	if err != nil {
		return nil, err
	}
	if s.listCache != nil {
		if dirty, dirtyErr := s.listCache.IsDirty(ctx, userID); dirtyErr == nil && !dirty {
			_ = s.listCache.SetList(ctx, userID, entries)
		}
	}
	return entries, nil
}

// ListByTag returns the owner's entries whose tag field contains tag as one
// of its comma-separated tokens.
func (s *JournalService) ListByTag(ctx context.Context, userID uint, tag string) ([]model.Entry, error) {
	if userID == 0 || strings.TrimSpace(tag) == "" {
		return nil, ErrInvalidInput
	}
	return s.entryRepo.ListByOwnerAndTag(userID, tag)
}

// Detail returns the single entry with the given title.
func (s *JournalService) Detail(ctx context.Context, title string) (*model.Entry, error) {
	entry, err := s.entryRepo.GetByTitle(title)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}
	return entry, nil
}

// Update overwrites the mutable fields of the entry currently titled
// originalTitle. Moving the title onto another entry's title fails.
func (s *JournalService) Update(ctx context.Context, originalTitle string, input EntryInput) (*model.Entry, error) {
	entry, err := s.entryRepo.GetByTitle(originalTitle)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalidInput
	}

	if input.UserID != 0 {
		entry.UserID = input.UserID
	}
	entry.Title = title
	entry.Duration = input.Duration
	entry.Learnings = input.Learnings
	entry.Resources = input.Resources
	entry.Tags = input.Tags
	if !input.EntryDate.IsZero() {
		entry.EntryDate = input.EntryDate
	}

	if err := s.entryRepo.Update(entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateTitle) {
			return nil, ErrTitleExists
		}
		return nil, err
	}

	s.invalidateList(ctx, entry.UserID)
	s.publishEvent(ctx, model.EntryActionUpdated, entry.Title, entry.UserID)
	return entry, nil
}

// DeleteByTitle removes the entry with the given title.
func (s *JournalService) DeleteByTitle(ctx context.Context, userID uint, title string) error {
	if err := s.entryRepo.DeleteByTitle(title); err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return ErrEntryNotFound
		}
		return err
	}

	s.invalidateList(ctx, userID)
	s.publishEvent(ctx, model.EntryActionDeleted, title, userID)
	return nil
}

// AuditTrail returns the owner's most recent recorded entry actions,
// newest first.
func (s *JournalService) AuditTrail(ctx context.Context, userID uint, limit int) ([]model.AuditEvent, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.auditRepo.ListByUserID(userID, limit)
}

func (s *JournalService) invalidateList(ctx context.Context, userID uint) {
	if s.listCache == nil {
		return
	}
	_ = s.listCache.MarkDirty(ctx, userID)
	_ = s.listCache.DeleteList(ctx, userID)
}

// publishEvent is best-effort: an unreachable broker must not fail the
// request that produced the event.
func (s *JournalService) publishEvent(ctx context.Context, action, title string, userID uint) {
	if s.publisher == nil {
		return
	}
	event := model.EntryEvent{
		Action:     action,
		EntryTitle: title,
		UserID:     userID,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("publish entry event failed: %v", err)
	}
}
