package model

import (
	"strings"
	"time"
)

// Entry is a single journal record. Titles are unique across all users,
// tags are a single comma-separated string.
type Entry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"size:100;not null;uniqueIndex" json:"title"`
	Duration  string    `gorm:"size:100;not null" json:"duration"`
	Learnings string    `gorm:"type:text;not null" json:"learnings"`
	Resources string    `gorm:"type:text;not null" json:"resources"`
	Tags      string    `gorm:"size:100;not null" json:"tags"`
	EntryDate time.Time `gorm:"index" json:"entry_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasTag reports whether tag appears as one of the comma-separated tokens
// in the entry's tag field. Matching is case-sensitive; tokens are trimmed
// of surrounding whitespace.
func (e *Entry) HasTag(tag string) bool {
	for _, token := range strings.Split(e.Tags, ",") {
		if strings.TrimSpace(token) == tag {
			return true
		}
	}
	return false
}

// TagList returns the entry's tags as trimmed tokens, empty tokens dropped.
func (e *Entry) TagList() []string {
	parts := strings.Split(e.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, token := range parts {
		if trimmed := strings.TrimSpace(token); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
