package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
	"go.uber.org/zap"

	"memorateller-backend/internal/domain"
	"memorateller-backend/internal/repository"
	appErrors "memorateller-backend/pkg/errors"
)

// memoryRow is the document store representation of a Memory. The store
// assigns id and created_at on insert (column default).
type memoryRow struct {
	ID        string     `json:"id,omitempty"`
	OwnerID   string     `json:"owner_id"`
	ImageURL  string     `json:"image_url"`
	Title     string     `json:"title"`
	Story     string     `json:"story"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func (r memoryRow) toDomain() domain.Memory {
	m := domain.Memory{
		ID:       r.ID,
		OwnerID:  r.OwnerID,
		ImageURL: r.ImageURL,
		Title:    r.Title,
		Story:    r.Story,
	}
	// A missing created_at degrades to "no date" rather than erroring.
	if r.CreatedAt != nil {
		m.CreatedAt = *r.CreatedAt
	}
	return m
}

// MemoryRepository persists Memory records in the platform's document
// store via its REST interface.
type MemoryRepository struct {
	client  *supa.Client
	table   string
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewMemoryRepository creates a repository over the shared client.
func NewMemoryRepository(client *supa.Client, table string, logger *zap.Logger) *MemoryRepository {
	return &MemoryRepository{
		client:  client,
		table:   table,
		breaker: newBreaker("supabase-documents", logger),
		logger:  logger,
	}
}

var _ repository.MemoryRepository = (*MemoryRepository)(nil)

// Insert writes one record and returns it with the server-assigned id and
// created_at from the representation the store echoes back.
func (r *MemoryRepository) Insert(ctx context.Context, m domain.Memory) (*domain.Memory, error) {
	row := memoryRow{
		OwnerID:  m.OwnerID,
		ImageURL: m.ImageURL,
		Title:    m.Title,
		Story:    m.Story,
	}

	result, err := r.breaker.Execute(func() (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, _, err := r.client.From(r.table).
			Insert(row, false, "", "representation", "").
			Execute()
		return data, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, appErrors.NewWrite("document store temporarily unavailable", err)
		}
		return nil, appErrors.NewWrite("memory insert failed", err)
	}

	var rows []memoryRow
	if err := json.Unmarshal(result.([]byte), &rows); err != nil {
		return nil, appErrors.NewWrite("unexpected insert response", err)
	}
	if len(rows) == 0 {
		return nil, appErrors.NewWrite("insert returned no record", nil)
	}

	saved := rows[0].toDomain()
	return &saved, nil
}

// ListByOwner returns the owner's records ordered by created_at
// descending.
func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Memory, error) {
	result, err := r.breaker.Execute(func() (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, _, err := r.client.From(r.table).
			Select("*", "", false).
			Eq("owner_id", ownerID).
			Order("created_at", &postgrest.OrderOpts{Ascending: false}).
			Execute()
		return data, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, appErrors.NewQuery("document store temporarily unavailable", err)
		}
		return nil, appErrors.NewQuery("memory query failed", err)
	}

	var rows []memoryRow
	if err := json.Unmarshal(result.([]byte), &rows); err != nil {
		return nil, appErrors.NewQuery("unexpected query response", err)
	}

	memories := make([]domain.Memory, 0, len(rows))
	for _, row := range rows {
		memories = append(memories, row.toDomain())
	}
	return memories, nil
}
