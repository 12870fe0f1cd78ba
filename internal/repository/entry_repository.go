package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"learnlog/internal/model"
)

type EntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Create persists a new entry. Titles are unique across all users, so a
// clashing title fails with ErrDuplicateTitle regardless of owner.
func (r *EntryRepository) Create(entry *model.Entry) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Entry
		err := tx.Where("title = ?", entry.Title).First(&existing).Error
		if err == nil {
			return ErrDuplicateTitle
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check existing title failed: %w", err)
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("create entry failed: %w", err)
		}
		return nil
	})
	return err
}

func (r *EntryRepository) ListByOwner(userID uint) ([]model.Entry, error) {
	var entries []model.Entry
	if err := r.db.Where("user_id = ?", userID).Order("entry_date DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list entries failed: %w", err)
	}
	return entries, nil
}

// ListByOwnerAndTag returns the owner's entries whose comma-separated tag
// field contains tag as an exact token. The LIKE clause narrows the scan,
// the token match decides.
func (r *EntryRepository) ListByOwnerAndTag(userID uint, tag string) ([]model.Entry, error) {
	var candidates []model.Entry
	if err := r.db.Where("user_id = ? AND tags LIKE ?", userID, "%"+tag+"%").
		Order("entry_date DESC").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("list entries by tag failed: %w", err)
	}

	entries := make([]model.Entry, 0, len(candidates))
	for _, entry := range candidates {
		if entry.HasTag(tag) {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (r *EntryRepository) GetByTitle(title string) (*model.Entry, error) {
	var entry model.Entry
	if err := r.db.Where("title = ?", title).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query entry by title failed: %w", err)
	}
	return &entry, nil
}

// Update overwrites all mutable fields of the entry in place. A title change
// onto another entry's title fails with ErrDuplicateTitle.
func (r *EntryRepository) Update(entry *model.Entry) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Entry
		err := tx.Where("title = ? AND id <> ?", entry.Title, entry.ID).First(&existing).Error
		if err == nil {
			return ErrDuplicateTitle
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check existing title failed: %w", err)
		}
		if err := tx.Save(entry).Error; err != nil {
			return fmt.Errorf("update entry failed: %w", err)
		}
		return nil
	})
	return err
}

// DeleteByTitle removes the entry with the given title. A missing title is
// reported as ErrEntryNotFound, distinct from storage failures.
func (r *EntryRepository) DeleteByTitle(title string) error {
	result := r.db.Where("title = ?", title).Delete(&model.Entry{})
	if result.Error != nil {
		return fmt.Errorf("delete entry failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *EntryRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Entry{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count entries failed: %w", err)
	}
	return count, nil
}
