package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/libris-backend/internal/domain"
	"github.com/heartmarshall/libris-backend/internal/service/fine"
)

type fineService interface {
	List(ctx context.Context, filter domain.FineFilter) ([]domain.Fine, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Fine, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Fine, error)
	Create(ctx context.Context, input fine.CreateFineInput) (*domain.Fine, error)
	UpdateStatus(ctx context.Context, input fine.UpdateStatusInput) (*domain.Fine, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Sweep(ctx context.Context, userID *uuid.UUID) (domain.SweepResult, error)
}

// FineHandler serves the fine endpoints.
type FineHandler struct {
	svc  fineService
	v    requestValidator
	errs errorWriter
}

// NewFineHandler creates a FineHandler.
func NewFineHandler(svc fineService, v requestValidator, logger *slog.Logger, dev bool) *FineHandler {
	log := logger.With("handler", "fines")
	return &FineHandler{svc: svc, v: v, errs: errorWriter{log: log, dev: dev}}
}

type createFineRequest struct {
	UserID string  `json:"userId" validate:"required,uuid"`
	LoanID string  `json:"loanId" validate:"required,uuid"`
	Amount float64 `json:"amount" validate:"gt=0"`
	Reason string  `json:"reason" validate:"max=500"`
}

type fineStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=paid unpaid"`
}

// List handles GET /api/fines?status=&userId=.
func (h *FineHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter domain.FineFilter
	userID, err := optionalUUID("userId", q.Get("userId"))
	if err != nil {
		h.errs.write(w, r, err, "Fine")
		return
	}
	filter.UserID = userID
	if s := q.Get("status"); s != "" {
		status := domain.FineStatus(s)
		filter.Status = &status
	}

	fines, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.errs.write(w, r, err, "Fine")
		return
	}
	writeOK(w, http.StatusOK, "", toFineResponses(fines))
}

// ListByUser handles GET /api/fines/user/{userId}.
func (h *FineHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		h.errs.write(w, r, err, "Fine")
		return
	}

	fines, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		h.errs.write(w, r, err, "Fine")
		return
	}
	writeOK(w, http.StatusOK, "", toFineResponses(fines))
}

// Get handles GET /api/fines/{id}.
func (h *FineHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		h.errs.write(w, r, err, "Fine")
		return
	}

	f, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.errs.write(w, r, err, "Fine")
		return
	}
	writeOK(w, http.StatusOK, "", toFineResponse(f))
}

// Create handles POST /api/fines.
func (h *FineHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errs.write(w, r, err, "Fine")
		return
	}
	if err := h.v.Validate(req); err != nil {
		h.errs.write(w, r, err, "Fine")
		return
	}

	userID, _ := requiredUUID("userId", req.UserID)
	loanID, _ := requiredUUID("loanId", req.LoanID)

	f, err := h.svc.Create(r.Context(), fine.CreateFineInput{
		UserID: userID,
		LoanID: loanID,
		Amount: req.Amount,
		Reason: req.Reason,
	})
	if err != nil {
		h.errs.write(w, r, err, "Fine")
		return
	}
	writeOK(w, http.StatusCreated, "Fine created successfully", toFineResponse(f))
}

// UpdateStatus handles PATCH /api/fines/{id}/status.
func (h *FineHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		h.errs.write(w, r, err, "Fine")
		return
	}

	var req fineStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errs.write(w, r, err, "Fine")
		return
	}
	if err := h.v.Validate(req); err != nil {
		h.errs.write(w, r, err, "Fine")
		return
	}

	f, err := h.svc.UpdateStatus(r.Context(), fine.UpdateStatusInput{
		FineID: id,
		Status: domain.FineStatus(req.Status),
	})
	if err != nil {
		h.errs.write(w, r, err, "Fine")
		return
	}
	writeOK(w, http.StatusOK, "Fine marked as "+req.Status, toFineResponse(f))
}

// Delete handles DELETE /api/fines/{id}.
func (h *FineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		h.errs.write(w, r, err, "Fine")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.errs.write(w, r, err, "Fine")
		return
	}
	writeOK(w, http.StatusOK, "Fine deleted successfully", nil)
}

// AutoGenerate handles POST /api/fines/auto-generate: runs the overdue sweep
// for every member and returns the newly created fines.
func (h *FineHandler) AutoGenerate(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Sweep(r.Context(), nil)
	if err != nil {
		h.errs.write(w, r, err, "Fine")
		return
	}

	msg := fmt.Sprintf("Generated %d fines for overdue books", len(result.Created))
	writeOK(w, http.StatusOK, msg, toFineResponses(result.Created))
}
