// Package mocks provides in-memory implementations of the repository
// interfaces for testing services without the managed platform.
package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"memorateller-backend/internal/domain"
)

// MockBlobStore is an in-memory BlobStore recording every upload.
type MockBlobStore struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	uploads []string
	failErr error
}

// NewMockBlobStore creates an empty mock blob store.
func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{blobs: make(map[string][]byte)}
}

// SetError makes every subsequent Upload fail with err.
func (s *MockBlobStore) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

// Upload stores the blob and returns a fake resolvable URL.
func (s *MockBlobStore) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return "", s.failErr
	}
	s.blobs[path] = append([]byte(nil), data...)
	s.uploads = append(s.uploads, path)
	return "https://blobs.example.test/" + path, nil
}

// Uploads returns the paths uploaded so far, in order.
func (s *MockBlobStore) Uploads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.uploads...)
}

// Blob returns the stored bytes for a path.
func (s *MockBlobStore) Blob(path string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[path]
	return b, ok
}

// MockMemoryRepository is an in-memory MemoryRepository.
type MockMemoryRepository struct {
	mu       sync.Mutex
	memories []domain.Memory

	// For testing error scenarios
	shouldFailOn map[string]error

	// clock lets tests control server-assigned timestamps.
	clock func() time.Time
}

// NewMockMemoryRepository creates a new mock repository instance.
func NewMockMemoryRepository() *MockMemoryRepository {
	return &MockMemoryRepository{
		shouldFailOn: make(map[string]error),
		clock:        time.Now,
	}
}

// SetError configures the mock to return an error for a specific method.
func (m *MockMemoryRepository) SetError(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFailOn[method] = err
}

// ClearErrors removes all configured errors.
func (m *MockMemoryRepository) ClearErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFailOn = make(map[string]error)
}

// SetClock overrides the timestamp source used for Insert.
func (m *MockMemoryRepository) SetClock(clock func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = clock
}

// Insert stores a memory, assigning ID and CreatedAt like the real store.
func (m *MockMemoryRepository) Insert(ctx context.Context, mem domain.Memory) (*domain.Memory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.shouldFailOn["Insert"]; err != nil {
		return nil, err
	}
	mem.ID = uuid.New().String()
	mem.CreatedAt = m.clock()
	m.memories = append(m.memories, mem)
	stored := mem
	return &stored, nil
}

// ListByOwner returns the owner's memories, most recent first.
func (m *MockMemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Memory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.shouldFailOn["ListByOwner"]; err != nil {
		return nil, err
	}
	var out []domain.Memory
	for _, mem := range m.memories {
		if mem.OwnerID == ownerID {
			out = append(out, mem)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Count returns the total number of stored memories across all owners.
func (m *MockMemoryRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.memories)
}

// Seed inserts a memory verbatim, bypassing ID/timestamp assignment.
func (m *MockMemoryRepository) Seed(mem domain.Memory) domain.Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mem.ID == "" {
		mem.ID = fmt.Sprintf("seed-%d", len(m.memories)+1)
	}
	m.memories = append(m.memories, mem)
	return mem
}
