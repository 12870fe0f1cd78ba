package model

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:128;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the capability the auth gate expects of anything it treats
// as a logged-in principal.
type Identity interface {
	GetID() uint
	IsActive() bool
	IsAuthenticated() bool
}

var _ Identity = (*User)(nil)

func (u *User) GetID() uint {
	if u == nil {
		return 0
	}
	return u.ID
}

// IsAuthenticated reports whether this user represents a verified identity.
// A nil or zero-value User is the anonymous identity.
func (u *User) IsAuthenticated() bool {
	return u != nil && u.ID != 0
}

func (u *User) IsActive() bool {
	return u.IsAuthenticated()
}
