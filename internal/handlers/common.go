// Package handlers provides the HTTP handlers for the MemoraTeller API.
package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"memorateller-backend/pkg/api"
	appErrors "memorateller-backend/pkg/errors"
)

// handleServiceError maps the application error taxonomy onto HTTP
// statuses. Upstream platform failures surface as 502 so clients can tell
// "retry later" from "fix your request"; internals stay generic.
func handleServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case appErrors.IsValidation(err):
		api.Error(w, http.StatusBadRequest, err.Error())
	case appErrors.IsNotFound(err):
		api.Error(w, http.StatusNotFound, err.Error())
	case appErrors.IsUnauthorized(err):
		api.Error(w, http.StatusUnauthorized, err.Error())
	case appErrors.IsConflict(err):
		api.Error(w, http.StatusConflict, err.Error())
	case appErrors.IsDecode(err), appErrors.IsEncode(err):
		api.Error(w, http.StatusUnprocessableEntity, err.Error())
	case appErrors.IsUnavailable(err):
		api.Error(w, http.StatusServiceUnavailable, err.Error())
	case appErrors.IsStorage(err), appErrors.IsWrite(err), appErrors.IsQuery(err), appErrors.IsAuth(err):
		logger.Error("upstream platform failure", zap.Error(err))
		api.Error(w, http.StatusBadGateway, "Upstream platform failure, please retry")
	default:
		logger.Error("internal error", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, "An internal error occurred")
	}
}

// HealthHandler answers liveness probes.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
}
