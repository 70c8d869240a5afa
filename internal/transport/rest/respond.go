package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/community-forum-backend/internal/domain"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

// FieldError mirrors a domain field validation error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// writeError maps domain errors to HTTP status codes and writes the
// JSON error body. Unknown errors become 500 with a generic message.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		fields := make([]FieldError, 0, len(vErr.Errors))
		for _, fe := range vErr.Errors {
			fields = append(fields, FieldError{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: fields})
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	case errors.Is(err, domain.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "already exists"})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "conflict"})
	default:
		log.Error("internal error", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
