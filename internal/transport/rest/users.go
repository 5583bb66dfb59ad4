package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/libris-backend/internal/domain"
	"github.com/heartmarshall/libris-backend/internal/service/member"
)

type memberService interface {
	List(ctx context.Context, search string) ([]domain.User, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Register(ctx context.Context, input member.RegisterInput) (*domain.User, bool, error)
	UpdateStatus(ctx context.Context, input member.UpdateStatusInput) (*domain.User, error)
}

// UserHandler serves the membership endpoints.
type UserHandler struct {
	svc  memberService
	v    requestValidator
	errs errorWriter
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc memberService, v requestValidator, logger *slog.Logger, dev bool) *UserHandler {
	log := logger.With("handler", "users")
	return &UserHandler{svc: svc, v: v, errs: errorWriter{log: log, dev: dev}}
}

type createUserRequest struct {
	ID    string `json:"id" validate:"omitempty,uuid"`
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"max=255"`
}

type userStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

// List handles GET /api/users?search=.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.errs.write(w, r, err, "User")
		return
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	writeOK(w, http.StatusOK, "", out)
}

// Get handles GET /api/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		h.errs.write(w, r, err, "Member")
		return
	}

	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.errs.write(w, r, err, "Member")
		return
	}
	writeOK(w, http.StatusOK, "", toUserResponse(u))
}

// Create handles POST /api/users: returns the member with the given id or
// email, registering them on first sight.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errs.write(w, r, err, "User")
		return
	}
	if err := h.v.Validate(req); err != nil {
		h.errs.write(w, r, err, "User")
		return
	}

	id, err := optionalUUID("id", req.ID)
	if err != nil {
		h.errs.write(w, r, err, "User")
		return
	}

	u, created, err := h.svc.Register(r.Context(), member.RegisterInput{
		ID:    id,
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		h.errs.write(w, r, err, "User")
		return
	}

	if created {
		writeOK(w, http.StatusCreated, "User created successfully", toUserResponse(u))
		return
	}
	writeOK(w, http.StatusOK, "User found", toUserResponse(u))
}

// UpdateStatus handles PATCH /api/users/{id}/status.
func (h *UserHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		h.errs.write(w, r, err, "Member")
		return
	}

	var req userStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errs.write(w, r, err, "Member")
		return
	}
	if err := h.v.Validate(req); err != nil {
		h.errs.write(w, r, err, "Member")
		return
	}

	u, err := h.svc.UpdateStatus(r.Context(), member.UpdateStatusInput{
		UserID: id,
		Status: domain.UserStatus(req.Status),
	})
	if err != nil {
		h.errs.write(w, r, err, "Member")
		return
	}

	writeOK(w, http.StatusOK, "Member status updated to "+req.Status, toUserResponse(u))
}
