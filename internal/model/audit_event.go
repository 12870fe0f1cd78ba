package model

import "time"

const (
	EntryActionCreated = "created"
	EntryActionUpdated = "updated"
	EntryActionDeleted = "deleted"
)

// EntryEvent is the wire payload published to the audit queue whenever an
// entry is created, updated or deleted.
type EntryEvent struct {
	Action     string    `json:"action"`
	EntryTitle string    `json:"entry_title"`
	UserID     uint      `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AuditEvent is the persisted form of an EntryEvent.
type AuditEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index" json:"user_id"`
	Action     string    `gorm:"size:16;not null" json:"action"`
	EntryTitle string    `gorm:"size:100;not null" json:"entry_title"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}
