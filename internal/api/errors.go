package api

import (
	"errors"
	"log/slog"
	"net/http"

	errorvalues "github.com/limbo/galaxy/internal/error_values"
	"github.com/limbo/galaxy/pkg/httputil"
)

// writeServiceError maps a service error onto its HTTP status. Validation
// and auth errors carry their reason, anything else is logged and hidden.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, errorvalues.ErrInvalidInput):
		logger.Info(op+" error: invalid input", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, errorvalues.ErrInvalidInput.Error(), err)
	case errors.Is(err, errorvalues.ErrInvalidUsername),
		errors.Is(err, errorvalues.ErrWeakPassword),
		errors.Is(err, errorvalues.ErrUsernameTaken):
		logger.Info(op+" error: rejected", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, errorvalues.ErrDuplicateID):
		logger.Info(op + " error: duplicate id")
		httputil.WriteErrorResponse(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, errorvalues.ErrInvalidCredentials):
		logger.Info(op + " error: wrong credentials")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, errorvalues.ErrUnauthenticated):
		writeUnauthorized(w)
	default:
		logger.Error(op+" error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error", nil)
	}
}

func writeBadBody(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	logger.Info(op+" error: invalid body", slog.String("error", err.Error()))
	httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
}

// writeUnauthorized is the only 401 body for a missing or dead session.
func writeUnauthorized(w http.ResponseWriter) {
	httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", nil)
}
