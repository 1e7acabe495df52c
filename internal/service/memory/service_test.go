// Package memory provides unit tests for the memory service using mock
// repositories.
package memory

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"memorateller-backend/internal/domain"
	"memorateller-backend/internal/image"
	"memorateller-backend/internal/repository/mocks"
	appErrors "memorateller-backend/pkg/errors"
)

func newTestImage() *image.Normalized {
	return &image.Normalized{
		Data:         []byte("jpeg-bytes"),
		Size:         1080,
		SourceWidth:  4032,
		SourceHeight: 3024,
	}
}

func TestSaveMemory(t *testing.T) {
	ctx := context.Background()

	t.Run("SuccessfulSave", func(t *testing.T) {
		blobs := mocks.NewMockBlobStore()
		repo := mocks.NewMockMemoryRepository()
		service := NewService(blobs, repo, zap.NewNop())

		mem, err := service.SaveMemory(ctx, "user-1", newTestImage(), "beach.png", "Beach day", "We built a sandcastle.")
		require.NoError(t, err)
		require.NotNil(t, mem)

		assert.NotEmpty(t, mem.ID)
		assert.Equal(t, "user-1", mem.OwnerID)
		assert.Equal(t, "Beach day", mem.Title)
		assert.Equal(t, "We built a sandcastle.", mem.Story)
		assert.False(t, mem.CreatedAt.IsZero())

		uploads := blobs.Uploads()
		require.Len(t, uploads, 1)
		assert.True(t, strings.HasPrefix(uploads[0], "users/user-1/memories/"))
		assert.True(t, strings.HasSuffix(uploads[0], "_beach.jpg"))
		assert.Equal(t, "https://blobs.example.test/"+uploads[0], mem.ImageURL)

		stored, ok := blobs.Blob(uploads[0])
		require.True(t, ok)
		assert.Equal(t, []byte("jpeg-bytes"), stored)
	})

	t.Run("ValidationFailuresHaveNoSideEffects", func(t *testing.T) {
		cases := []struct {
			name  string
			owner string
			img   *image.Normalized
			title string
			story string
		}{
			{"MissingIdentity", "", newTestImage(), "Title", "Story"},
			{"NilImage", "user-1", nil, "Title", "Story"},
			{"EmptyImage", "user-1", &image.Normalized{}, "Title", "Story"},
			{"EmptyTitle", "user-1", newTestImage(), "", "Story"},
			{"EmptyStory", "user-1", newTestImage(), "Title", ""},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				blobs := mocks.NewMockBlobStore()
				repo := mocks.NewMockMemoryRepository()
				service := NewService(blobs, repo, zap.NewNop())

				mem, err := service.SaveMemory(ctx, tc.owner, tc.img, "f.jpg", tc.title, tc.story)
				require.Error(t, err)
				assert.True(t, appErrors.IsValidation(err))
				assert.Nil(t, mem)

				// The gate fails before any collaborator call.
				assert.Empty(t, blobs.Uploads())
				assert.Zero(t, repo.Count())
			})
		}
	})

	t.Run("UploadFailureWritesNoRecord", func(t *testing.T) {
		blobs := mocks.NewMockBlobStore()
		repo := mocks.NewMockMemoryRepository()
		service := NewService(blobs, repo, zap.NewNop())

		blobs.SetError(appErrors.NewStorage("bucket unavailable", nil))

		mem, err := service.SaveMemory(ctx, "user-1", newTestImage(), "f.jpg", "Title", "Story")
		require.Error(t, err)
		assert.True(t, appErrors.IsStorage(err))
		assert.Nil(t, mem)
		assert.Zero(t, repo.Count())
	})

	t.Run("InsertFailurePreservesErrorType", func(t *testing.T) {
		blobs := mocks.NewMockBlobStore()
		repo := mocks.NewMockMemoryRepository()
		service := NewService(blobs, repo, zap.NewNop())

		repo.SetError("Insert", appErrors.NewWrite("insert rejected", nil))

		mem, err := service.SaveMemory(ctx, "user-1", newTestImage(), "f.jpg", "Title", "Story")
		require.Error(t, err)
		assert.True(t, appErrors.IsWrite(err))
		assert.Nil(t, mem)

		// The upload happened before the failed write.
		assert.Len(t, blobs.Uploads(), 1)
	})

	t.Run("RepeatedFilenamesDoNotCollide", func(t *testing.T) {
		blobs := mocks.NewMockBlobStore()
		repo := mocks.NewMockMemoryRepository()

		ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		svc := &service{
			blobs:  blobs,
			repo:   repo,
			logger: zap.NewNop(),
			clock: func() time.Time {
				ts = ts.Add(time.Millisecond)
				return ts
			},
		}

		_, err := svc.SaveMemory(ctx, "user-1", newTestImage(), "same.jpg", "First", "Story one")
		require.NoError(t, err)
		_, err = svc.SaveMemory(ctx, "user-1", newTestImage(), "same.jpg", "Second", "Story two")
		require.NoError(t, err)

		uploads := blobs.Uploads()
		require.Len(t, uploads, 2)
		assert.NotEqual(t, uploads[0], uploads[1])
	})
}

func TestListMemories(t *testing.T) {
	ctx := context.Background()

	t.Run("MostRecentFirst", func(t *testing.T) {
		blobs := mocks.NewMockBlobStore()
		repo := mocks.NewMockMemoryRepository()
		service := NewService(blobs, repo, zap.NewNop())

		base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
		for i, title := range []string{"first", "second", "third"} {
			repo.Seed(domain.Memory{
				OwnerID:   "user-1",
				ImageURL:  "https://blobs.example.test/" + title,
				Title:     title,
				Story:     "story",
				CreatedAt: base.Add(time.Duration(i) * time.Hour),
			})
		}

		memories, err := service.ListMemories(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, memories, 3)
		assert.Equal(t, "third", memories[0].Title)
		assert.Equal(t, "second", memories[1].Title)
		assert.Equal(t, "first", memories[2].Title)
	})

	t.Run("OwnershipScoping", func(t *testing.T) {
		blobs := mocks.NewMockBlobStore()
		repo := mocks.NewMockMemoryRepository()
		service := NewService(blobs, repo, zap.NewNop())

		repo.Seed(domain.Memory{OwnerID: "user-a", ImageURL: "u", Title: "a", Story: "s", CreatedAt: time.Now()})
		repo.Seed(domain.Memory{OwnerID: "user-b", ImageURL: "u", Title: "b", Story: "s", CreatedAt: time.Now()})

		memories, err := service.ListMemories(ctx, "user-a")
		require.NoError(t, err)
		require.Len(t, memories, 1)
		assert.Equal(t, "a", memories[0].Title)
	})

	t.Run("EmptyListIsValid", func(t *testing.T) {
		service := NewService(mocks.NewMockBlobStore(), mocks.NewMockMemoryRepository(), zap.NewNop())

		memories, err := service.ListMemories(ctx, "user-none")
		require.NoError(t, err)
		assert.Empty(t, memories)
	})

	t.Run("MissingIdentity", func(t *testing.T) {
		service := NewService(mocks.NewMockBlobStore(), mocks.NewMockMemoryRepository(), zap.NewNop())

		memories, err := service.ListMemories(ctx, "")
		require.Error(t, err)
		assert.True(t, appErrors.IsUnauthorized(err))
		assert.Nil(t, memories)
	})

	t.Run("QueryFailurePreservesErrorType", func(t *testing.T) {
		repo := mocks.NewMockMemoryRepository()
		service := NewService(mocks.NewMockBlobStore(), repo, zap.NewNop())

		repo.SetError("ListByOwner", appErrors.NewQuery("table unreachable", nil))

		_, err := service.ListMemories(ctx, "user-1")
		require.Error(t, err)
		assert.True(t, appErrors.IsQuery(err))
	})
}
