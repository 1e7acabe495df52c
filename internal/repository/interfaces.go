// Package repository defines the data access interfaces for the
// MemoraTeller backend. The real implementations delegate to the managed
// platform (blob storage and document store); in-memory mocks back the
// unit tests.
package repository

import (
	"context"

	"memorateller-backend/internal/domain"
)

// BlobStore persists opaque blobs under identity-scoped paths.
type BlobStore interface {
	// Upload stores data at path and returns a resolvable URL. The path
	// is already scoped under the owning identity by the caller.
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// MemoryRepository persists and queries Memory records.
type MemoryRepository interface {
	// Insert writes one Memory record. The store assigns ID and
	// CreatedAt; the returned Memory carries both.
	Insert(ctx context.Context, m domain.Memory) (*domain.Memory, error)

	// ListByOwner returns the owner's memories ordered by CreatedAt
	// descending. An empty result is a valid, empty slice.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Memory, error)
}
