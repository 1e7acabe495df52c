package supabase

import (
	"bytes"
	"context"
	"errors"

	"github.com/sony/gobreaker"
	storage_go "github.com/supabase-community/storage-go"
	supa "github.com/supabase-community/supabase-go"
	"go.uber.org/zap"

	"memorateller-backend/internal/repository"
	appErrors "memorateller-backend/pkg/errors"
)

// BlobStore stores normalized images in the platform's storage bucket.
type BlobStore struct {
	client  *supa.Client
	bucket  string
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewBlobStore creates a blob store over the shared client.
func NewBlobStore(client *supa.Client, bucket string, logger *zap.Logger) *BlobStore {
	return &BlobStore{
		client:  client,
		bucket:  bucket,
		breaker: newBreaker("supabase-storage", logger),
		logger:  logger,
	}
}

var _ repository.BlobStore = (*BlobStore)(nil)

// Upload stores the blob and returns its public URL. The URL resolves
// only after the upload has completed, which preserves the workflow's
// ordering guarantee.
func (b *BlobStore) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	result, err := b.breaker.Execute(func() (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		_, err := b.client.Storage.UploadFile(b.bucket, path, bytes.NewReader(data), storage_go.FileOptions{
			ContentType: &contentType,
		})
		if err != nil {
			return nil, err
		}
		resp := b.client.Storage.GetPublicUrl(b.bucket, path)
		return resp.SignedURL, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", appErrors.NewStorage("blob storage temporarily unavailable", err)
		}
		return "", appErrors.NewStorage("blob upload failed", err)
	}

	url, _ := result.(string)
	if url == "" {
		return "", appErrors.NewStorage("upload yielded no resolvable url", nil)
	}
	return url, nil
}
