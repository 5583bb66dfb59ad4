package fine

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/libris-backend/internal/domain"
)

// CreateFineInput holds the parameters of a manually issued fine.
type CreateFineInput struct {
	UserID uuid.UUID
	LoanID uuid.UUID
	Amount float64
	Reason string // empty = domain.DefaultFineReason
}

// Validate checks all fields and collects all errors.
func (i CreateFineInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "userId", Message: "required"})
	}
	if i.LoanID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "loanId", Message: "required"})
	}
	if i.Amount <= 0 {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}
	if len(strings.TrimSpace(i.Reason)) > 500 {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "max 500 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateStatusInput marks a fine paid or unpaid.
type UpdateStatusInput struct {
	FineID uuid.UUID
	Status domain.FineStatus
}

// Validate checks all fields and collects all errors.
func (i UpdateStatusInput) Validate() error {
	var errs []domain.FieldError
	if i.FineID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be paid or unpaid"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
