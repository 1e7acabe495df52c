// Package memory provides business logic for saving and listing memories.
package memory

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"memorateller-backend/internal/domain"
	"memorateller-backend/internal/image"
	"memorateller-backend/internal/repository"
	appErrors "memorateller-backend/pkg/errors"
)

// Service defines the interface for memory-related business operations.
type Service interface {
	// SaveMemory uploads the normalized image and writes one Memory
	// record referencing it. The upload completes before the record is
	// written; a record never references an unresolvable image location.
	SaveMemory(ctx context.Context, ownerID string, img *image.Normalized, filename, title, story string) (*domain.Memory, error)

	// ListMemories returns the owner's memories, most recent first.
	ListMemories(ctx context.Context, ownerID string) ([]domain.Memory, error)
}

// service implements the Service interface with concrete business logic.
type service struct {
	blobs  repository.BlobStore
	repo   repository.MemoryRepository
	logger *zap.Logger
	clock  func() time.Time
}

// NewService creates a new memory service with the provided collaborators.
func NewService(blobs repository.BlobStore, repo repository.MemoryRepository, logger *zap.Logger) Service {
	return &service{
		blobs:  blobs,
		repo:   repo,
		logger: logger,
		clock:  time.Now,
	}
}

// SaveMemory validates the full precondition before touching any
// collaborator: a failed precondition performs no partial side effects.
func (s *service) SaveMemory(ctx context.Context, ownerID string, img *image.Normalized, filename, title, story string) (*domain.Memory, error) {
	if ownerID == "" {
		return nil, appErrors.NewValidation("identity is required")
	}
	if img == nil || len(img.Data) == 0 {
		return nil, appErrors.NewValidation("a normalized image is required")
	}
	if title == "" {
		return nil, appErrors.NewValidation("title cannot be empty")
	}
	if story == "" {
		return nil, appErrors.NewValidation("story cannot be empty")
	}

	path := s.blobPath(ownerID, filename)
	url, err := s.blobs.Upload(ctx, path, img.Data, img.ContentType())
	if err != nil {
		return nil, appErrors.Wrap(err, "image upload failed")
	}

	mem := domain.Memory{
		OwnerID:  ownerID,
		ImageURL: url,
		Title:    title,
		Story:    story,
	}
	if err := mem.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.repo.Insert(ctx, mem)
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to write memory record")
	}

	s.logger.Info("memory saved",
		zap.String("memory_id", saved.ID),
		zap.String("owner_id", saved.OwnerID),
		zap.Int("image_bytes", len(img.Data)),
	)
	return saved, nil
}

// ListMemories retrieves the owner's records in reverse-chronological order.
func (s *service) ListMemories(ctx context.Context, ownerID string) ([]domain.Memory, error) {
	if ownerID == "" {
		return nil, appErrors.NewUnauthorized("sign-in required")
	}

	memories, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to list memories")
	}
	return memories, nil
}

// blobPath keys the upload under the owning identity, timestamped so
// repeated saves of the same filename never collide.
func (s *service) blobPath(ownerID, filename string) string {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "memora"
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return fmt.Sprintf("users/%s/memories/%d_%s.jpg", ownerID, s.clock().UnixMilli(), name)
}
