// Package api defines the contracts for API requests and responses.
// It decouples the API structure from the internal domain models.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"memorateller-backend/internal/capture"
	"memorateller-backend/internal/domain"
)

// DraftRequest is the expected body for a PUT /captures/{captureId} request.
type DraftRequest struct {
	Title string `json:"title"`
	Story string `json:"story"`
}

// SaveMemoryRequest optionally carries a final draft with the save action,
// so clients can submit the edit form in one round trip.
type SaveMemoryRequest struct {
	Title string `json:"title" validate:"omitempty,max=200"`
	Story string `json:"story" validate:"omitempty,max=5000"`
}

// CaptureResponse is the API representation of a capture session.
type CaptureResponse struct {
	CaptureID string `json:"captureId"`
	State     string `json:"state"`
	Title     string `json:"title,omitempty"`
	Story     string `json:"story,omitempty"`
	// ImageSize is the edge length of the normalized square, present
	// once an image is attached.
	ImageSize int `json:"imageSize,omitempty"`
}

// NewCaptureResponse maps a capture session to its API shape.
func NewCaptureResponse(s *capture.Session, imageSize int) CaptureResponse {
	title, story := s.Draft()
	return CaptureResponse{
		CaptureID: s.ID(),
		State:     string(s.State()),
		Title:     title,
		Story:     story,
		ImageSize: imageSize,
	}
}

// MemoryResponse is the API representation of a single memory.
type MemoryResponse struct {
	MemoryID string `json:"memoryId"`
	ImageURL string `json:"imageUrl"`
	Title    string `json:"title"`
	Story    string `json:"story"`
	// Timestamp is empty for records lacking a resolvable creation time.
	Timestamp string `json:"timestamp,omitempty"`
}

// NewMemoryResponse maps a domain Memory to its API shape.
func NewMemoryResponse(m domain.Memory) MemoryResponse {
	resp := MemoryResponse{
		MemoryID: m.ID,
		ImageURL: m.ImageURL,
		Title:    m.Title,
		Story:    m.Story,
	}
	if m.HasDate() {
		resp.Timestamp = m.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

// ListMemoriesResponse wraps the gallery listing.
type ListMemoriesResponse struct {
	Memories []MemoryResponse `json:"memories"`
}

// ErrorResponse is a standardized error message for API responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Success formats a successful JSON response.
func Success(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Error formats a JSON error response.
func Error(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
