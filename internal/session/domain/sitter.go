package domain

import "time"

// SitterItem is a caregiver's saved sitter record. Identity is ID; email
// uniqueness within a directory is expected but not enforced in-model.
type SitterItem struct {
	ID        string
	AccountID string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
