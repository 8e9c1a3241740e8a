package httputil

import (
	"errors"
	"log/slog"
	"net/http"

	"academy-service/internal/apperrors"
)

// RespondWithServiceError maps an error kind to its status code. Errors of
// no known kind are logged and answered with a generic 500.
func RespondWithServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.InfoContext(r.Context(), "invalid input", "error", err)
		RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		logger.InfoContext(r.Context(), "resource not found", "error", err)
		RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		logger.InfoContext(r.Context(), "conflict", "error", err)
		RespondWithError(w, http.StatusConflict, err.Error())
	default:
		logger.ErrorContext(r.Context(), "internal error", "error", err, "path", r.URL.Path)
		RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
