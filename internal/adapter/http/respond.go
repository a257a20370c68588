package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"bluerhyno/internal/bootstrap/logging"
	domain "bluerhyno/internal/domain/quoting"
	"bluerhyno/internal/errs"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps domain error kinds onto HTTP statuses. Anything outside
// the known kinds is reported as a generic 500 so storage details never
// leak to callers.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, domain.ErrInvalidTransition):
		status = http.StatusConflict
		message = err.Error()
	default:
		logging.Error(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("err", errs.Loggable(err)),
		)
	}

	writeJSON(w, status, errorResponse{Success: false, Message: message})
}

func wrapValidation(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrValidation, err)
}

func wrapValidationMsg(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, fmt.Sprintf(format, args...))
}
