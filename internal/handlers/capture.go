package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"memorateller-backend/internal/capture"
	"memorateller-backend/internal/image"
	"memorateller-backend/internal/middleware"
	"memorateller-backend/internal/observability"
	"memorateller-backend/internal/service/memory"
	"memorateller-backend/pkg/api"
	appErrors "memorateller-backend/pkg/errors"
)

// CaptureHandler drives the two-step capture workflow over HTTP.
type CaptureHandler struct {
	store      *capture.Store
	normalizer *image.Normalizer
	service    memory.Service
	validate   *validator.Validate
	metrics    *observability.Collector
	logger     *zap.Logger

	maxUploadBytes int64
}

// NewCaptureHandler creates a capture handler.
func NewCaptureHandler(
	store *capture.Store,
	normalizer *image.Normalizer,
	service memory.Service,
	metrics *observability.Collector,
	logger *zap.Logger,
	maxUploadBytes int64,
) *CaptureHandler {
	return &CaptureHandler{
		store:          store,
		normalizer:     normalizer,
		service:        service,
		validate:       validator.New(),
		metrics:        metrics,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// Create begins a capture session for the authenticated identity.
func (h *CaptureHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Sign-in required")
		return
	}

	s := h.store.Create(identity.ID)
	h.logger.Info("capture session started",
		zap.String("capture_id", s.ID()),
		zap.String("owner_id", identity.ID),
	)
	api.Success(w, http.StatusCreated, api.NewCaptureResponse(s, 0))
}

// AttachImage accepts the selected photo as multipart form data,
// normalizes it, and advances the session to editing. A failed
// normalization leaves the session on the upload step.
func (h *CaptureHandler) AttachImage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid multipart request body")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Unreadable image file")
		return
	}

	img, err := s.AttachImage(h.normalizer, raw, header.Filename)
	if err != nil {
		h.metrics.NormalizationFailures.WithLabelValues(string(appErrors.TypeOf(err))).Inc()
		handleServiceError(w, h.logger, err)
		return
	}

	h.metrics.ImagesNormalized.Inc()
	h.logger.Info("image normalized",
		zap.String("capture_id", s.ID()),
		zap.Int("size", img.Size),
		zap.Int("source_width", img.SourceWidth),
		zap.Int("source_height", img.SourceHeight),
	)
	api.Success(w, http.StatusOK, api.NewCaptureResponse(s, img.Size))
}

// UpdateDraft sets the title and story of an in-progress capture.
func (h *CaptureHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req api.DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.SetDraft(req.Title, req.Story); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	api.Success(w, http.StatusOK, api.NewCaptureResponse(s, 0))
}

// Save persists the capture as one Memory record. The request body may
// carry a final draft so the edit form submits in one round trip; an
// empty body saves the current draft.
func (h *CaptureHandler) Save(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req api.SaveMemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid draft fields")
		return
	}
	if req.Title != "" || req.Story != "" {
		if err := s.SetDraft(req.Title, req.Story); err != nil {
			handleServiceError(w, h.logger, err)
			return
		}
	}

	mem, err := s.Save(r.Context(), h.service)
	if err != nil {
		h.metrics.SaveFailures.WithLabelValues(string(appErrors.TypeOf(err))).Inc()
		handleServiceError(w, h.logger, err)
		return
	}

	h.metrics.MemoriesSaved.Inc()
	api.Success(w, http.StatusCreated, api.NewMemoryResponse(*mem))
}

// session resolves the capture session for the authenticated identity,
// writing the error response itself when it cannot.
func (h *CaptureHandler) session(w http.ResponseWriter, r *http.Request) (*capture.Session, bool) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Sign-in required")
		return nil, false
	}

	captureID := chi.URLParam(r, "captureId")
	s, err := h.store.Get(captureID, identity.ID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return nil, false
	}
	return s, true
}
