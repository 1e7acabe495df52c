package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"memorateller-backend/internal/middleware"
	"memorateller-backend/internal/service/memory"
	"memorateller-backend/pkg/api"
)

// MemoryHandler serves the gallery listing.
type MemoryHandler struct {
	service memory.Service
	logger  *zap.Logger
}

// NewMemoryHandler creates a memory handler.
func NewMemoryHandler(service memory.Service, logger *zap.Logger) *MemoryHandler {
	return &MemoryHandler{service: service, logger: logger}
}

// List returns the authenticated identity's memories, most recent first.
// An empty gallery is a valid, empty list; the client renders its
// call-to-action from it.
func (h *MemoryHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Sign-in required")
		return
	}

	memories, err := h.service.ListMemories(r.Context(), identity.ID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	resp := api.ListMemoriesResponse{Memories: make([]api.MemoryResponse, 0, len(memories))}
	for _, m := range memories {
		resp.Memories = append(resp.Memories, api.NewMemoryResponse(m))
	}
	api.Success(w, http.StatusOK, resp)
}
