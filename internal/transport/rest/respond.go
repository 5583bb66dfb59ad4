package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/libris-backend/internal/domain"
)

const maxBodyBytes = 1 << 20

// envelope is the {success, data} body of the membership and fine endpoints.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Success bool                 `json:"success"`
	Error   string               `json:"error"`
	Message string               `json:"message"`
	Details []fieldErrorResponse `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeOK(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, title, message string) {
	writeJSON(w, status, errorResponse{Error: title, Message: message})
}

// errorWriter maps service errors to HTTP responses.
type errorWriter struct {
	log *slog.Logger
	dev bool
}

// write answers with the status matching err. resource names the entity for
// not-found and duplicate messages.
func (e errorWriter) write(w http.ResponseWriter, r *http.Request, err error, resource string) {
	var (
		ve   *domain.ValidationError
		rule *domain.RuleError
	)

	switch {
	case errors.As(err, &ve):
		details := make([]fieldErrorResponse, 0, len(ve.Errors))
		msgs := make([]string, 0, len(ve.Errors))
		for _, fe := range ve.Errors {
			details = append(details, fieldErrorResponse{Field: fe.Field, Message: fe.Message})
			msgs = append(msgs, fieldMessage(fe))
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Validation Error",
			Message: strings.Join(msgs, "; "),
			Details: details,
		})
	case errors.As(err, &rule):
		writeError(w, http.StatusBadRequest, rule.Code, rule.Message)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not Found", resource+" not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusBadRequest, "Conflict", duplicateMessage(resource))
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusBadRequest, "Conflict", "request conflicts with the current state")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "Forbidden", "access denied")
	default:
		e.log.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		msg := "internal server error"
		if e.dev {
			msg = err.Error()
		}
		writeError(w, http.StatusInternalServerError, "Internal Server Error", msg)
	}
}

func fieldMessage(fe domain.FieldError) string {
	if fe.Field == "" || fe.Field == "input" {
		return fe.Message
	}
	return fe.Field + " " + fe.Message
}

func duplicateMessage(resource string) string {
	switch resource {
	case "Book":
		return "Book with this ISBN already exists"
	case "User":
		return "User with this email already exists"
	case "Fine":
		return "A fine already exists for this loan"
	default:
		return resource + " already exists"
	}
}

// decodeJSON reads a JSON body into dst. An empty body decodes to the zero
// value.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return domain.NewValidationError("body", "must be a valid JSON object")
	}
	return nil
}

// pathUUID parses a chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a valid UUID")
	}
	return id, nil
}

// optionalUUID parses an optional UUID from a request field; blank is nil.
func optionalUUID(field, raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.NewValidationError(field, "must be a valid UUID")
	}
	return &id, nil
}

// requiredUUID is like optionalUUID but maps blank to uuid.Nil, leaving the
// presence check to the service.
func requiredUUID(field, raw string) (uuid.UUID, error) {
	id, err := optionalUUID(field, raw)
	if err != nil || id == nil {
		return uuid.Nil, err
	}
	return *id, nil
}
