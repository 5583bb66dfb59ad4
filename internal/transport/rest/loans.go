package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/libris-backend/internal/domain"
	"github.com/heartmarshall/libris-backend/internal/service/lending"
)

type lendingService interface {
	List(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Loan, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
	Borrow(ctx context.Context, input lending.BorrowInput) (*domain.Loan, error)
	Update(ctx context.Context, input lending.UpdateLoanInput) (*domain.Loan, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Now() time.Time
}

// LoanHandler serves the lending endpoints.
type LoanHandler struct {
	svc  lendingService
	v    requestValidator
	errs errorWriter
}

// NewLoanHandler creates a LoanHandler.
func NewLoanHandler(svc lendingService, v requestValidator, logger *slog.Logger, dev bool) *LoanHandler {
	log := logger.With("handler", "loans")
	return &LoanHandler{svc: svc, v: v, errs: errorWriter{log: log, dev: dev}}
}

type borrowRequest struct {
	BookID  string     `json:"bookId" validate:"omitempty,uuid"`
	UserID  string     `json:"userId" validate:"omitempty,uuid"`
	DueDate *time.Time `json:"dueDate"`
}

type borrowResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Loan    loanResponse `json:"loan"`
}

type updateLoanRequest struct {
	DueAt      *time.Time `json:"dueAt"`
	Status     *string    `json:"status" validate:"omitempty,oneof=active returned"`
	ReturnedAt *time.Time `json:"returnedAt"`
}

// List handles GET /api/loans?status=&userId=&bookId=.
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter domain.LoanFilter
	var err error
	if filter.UserID, err = optionalUUID("userId", q.Get("userId")); err != nil {
		h.errs.write(w, r, err, "Loan")
		return
	}
	if filter.BookID, err = optionalUUID("bookId", q.Get("bookId")); err != nil {
		h.errs.write(w, r, err, "Loan")
		return
	}
	if s := q.Get("status"); s != "" {
		status := domain.LoanStatus(s)
		filter.Status = &status
	}

	loans, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.errs.write(w, r, err, "Loan")
		return
	}
	writeJSON(w, http.StatusOK, toLoanResponses(loans, h.svc.Now()))
}

// ListByUser handles GET /api/loans/user/{userId}.
func (h *LoanHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		h.errs.write(w, r, err, "Loan")
		return
	}

	loans, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		h.errs.write(w, r, err, "Loan")
		return
	}
	writeJSON(w, http.StatusOK, toLoanResponses(loans, h.svc.Now()))
}

// Get handles GET /api/loans/{id}.
func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		h.errs.write(w, r, err, "Loan")
		return
	}

	loan, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.errs.write(w, r, err, "Loan")
		return
	}
	writeJSON(w, http.StatusOK, toLoanResponse(loan, h.svc.Now()))
}

// Borrow handles POST /api/loans.
func (h *LoanHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	var req borrowRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errs.write(w, r, err, "Book")
		return
	}
	if err := h.v.Validate(req); err != nil {
		h.errs.write(w, r, err, "Book")
		return
	}

	// Validated above; blank ids stay uuid.Nil for the service's own check.
	bookID, _ := requiredUUID("bookId", req.BookID)
	userID, _ := requiredUUID("userId", req.UserID)

	loan, err := h.svc.Borrow(r.Context(), lending.BorrowInput{
		BookID:  bookID,
		UserID:  userID,
		DueDate: req.DueDate,
	})
	if err != nil {
		resource := "Book"
		if errors.Is(err, lending.ErrUnknownMember) {
			resource = "User"
		}
		h.errs.write(w, r, err, resource)
		return
	}

	writeJSON(w, http.StatusCreated, borrowResponse{
		Success: true,
		Message: "Book borrowed successfully",
		Loan:    toLoanResponse(loan, h.svc.Now()),
	})
}

// Update handles PUT /api/loans/{id}: return and/or renewal.
func (h *LoanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		h.errs.write(w, r, err, "Loan")
		return
	}

	var req updateLoanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errs.write(w, r, err, "Loan")
		return
	}
	if err := h.v.Validate(req); err != nil {
		h.errs.write(w, r, err, "Loan")
		return
	}

	input := lending.UpdateLoanInput{
		LoanID:     id,
		DueAt:      req.DueAt,
		ReturnedAt: req.ReturnedAt,
	}
	if req.Status != nil {
		status := domain.LoanStatus(*req.Status)
		input.Status = &status
	}

	loan, err := h.svc.Update(r.Context(), input)
	if err != nil {
		h.errs.write(w, r, err, "Loan")
		return
	}
	writeJSON(w, http.StatusOK, toLoanResponse(loan, h.svc.Now()))
}

// Delete handles DELETE /api/loans/{id}.
func (h *LoanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		h.errs.write(w, r, err, "Loan")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.errs.write(w, r, err, "Loan")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
