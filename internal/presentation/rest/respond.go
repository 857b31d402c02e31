package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rishii-05/stroke-prediction-project/internal/application/usecase"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/port"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/valueobject"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) //nolint:errcheck
}

// writeError maps application and domain errors to HTTP statuses. Client
// errors keep their message; server errors are logged and redacted.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := statusForError(err)

	switch {
	case status == http.StatusServiceUnavailable:
		logger.Error("risk model unavailable", "error", err)
		respondJSON(w, status, errorResponse{Error: "risk model unavailable"})
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "error", err)
		respondJSON(w, status, errorResponse{Error: "internal error"})
	default:
		respondJSON(w, status, errorResponse{Error: err.Error()})
	}
}

func statusForError(err error) int {
	var (
		missing     *valueobject.MissingRequiredFieldError
		invalid     *valueobject.InvalidCategoryError
		unavailable *port.ModelUnavailableError
	)

	switch {
	case errors.As(err, &missing), errors.As(err, &invalid),
		errors.Is(err, usecase.ErrPasswordTooShort):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrAssessmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, port.ErrDuplicateUsername):
		return http.StatusConflict
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
