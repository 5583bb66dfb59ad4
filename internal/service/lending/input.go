package lending

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/libris-backend/internal/domain"
)

// BorrowInput holds the parameters of a new loan.
type BorrowInput struct {
	BookID  uuid.UUID
	UserID  uuid.UUID
	DueDate *time.Time
}

// Validate only checks that both ids are present. The remaining preconditions
// are checked in order by Borrow.
func (i BorrowInput) Validate() error {
	if i.BookID == uuid.Nil || i.UserID == uuid.Nil {
		return domain.NewValidationError("input", "bookId and userId are required")
	}
	return nil
}

// UpdateLoanInput holds a return and/or renewal of a loan.
type UpdateLoanInput struct {
	LoanID     uuid.UUID
	DueAt      *time.Time
	Status     *domain.LoanStatus
	ReturnedAt *time.Time
}

// Validate checks all fields and collects all errors.
func (i UpdateLoanInput) Validate() error {
	var errs []domain.FieldError

	if i.LoanID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.DueAt == nil && i.Status == nil && i.ReturnedAt == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one of dueAt, status or returnedAt is required"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be active or returned"})
	}
	if i.Status != nil && *i.Status == domain.LoanStatusActive && i.ReturnedAt != nil {
		errs = append(errs, domain.FieldError{Field: "returnedAt", Message: "not allowed for an active loan"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// returns reports whether the update ends the loan.
func (i UpdateLoanInput) returns() bool {
	if i.Status != nil {
		return *i.Status == domain.LoanStatusReturned
	}
	return i.ReturnedAt != nil
}
