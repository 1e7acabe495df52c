// Package domain contains the core entities of the MemoraTeller backend.
package domain

import (
	"time"

	appErrors "memorateller-backend/pkg/errors"
)

// Memory pairs a stored image with a title, story, owner, and creation time.
// A memory is created exactly once and never mutated; every field is
// required when it reaches persistence.
type Memory struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	ImageURL  string    `json:"image_url"`
	Title     string    `json:"title"`
	Story     string    `json:"story"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the creation invariants. CreatedAt is exempt: the
// document store assigns it on insert.
func (m Memory) Validate() error {
	if m.OwnerID == "" {
		return appErrors.NewValidation("owner id is required")
	}
	if m.ImageURL == "" {
		return appErrors.NewValidation("image url is required")
	}
	if m.Title == "" {
		return appErrors.NewValidation("title is required")
	}
	if m.Story == "" {
		return appErrors.NewValidation("story is required")
	}
	return nil
}

// HasDate reports whether the record carries a resolvable creation time.
// Older records may lack one; they are displayed without a date.
func (m Memory) HasDate() bool {
	return !m.CreatedAt.IsZero()
}
