package repository

import "errors"

var (
	ErrDuplicateEmail = errors.New("email already exists")
	ErrDuplicateTitle = errors.New("title already exists")
	ErrEntryNotFound  = errors.New("entry not found")
)
