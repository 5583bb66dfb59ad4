package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// RuleError is a business-rule rejection. Its Message is safe to show to
// clients; Code lets clients branch without parsing text.
type RuleError struct {
	Code    string
	Message string
}

func (e *RuleError) Error() string { return e.Message }

func (e *RuleError) Unwrap() error { return ErrConflict }

// Business-rule rejections of the lending engine.
var (
	ErrNoAvailableCopies = &RuleError{
		Code:    "no_available_copies",
		Message: "No available copies of this book",
	}
	ErrAccountInactive = &RuleError{
		Code:    "account_inactive",
		Message: "Your account is not active",
	}
	ErrOutstandingFines = &RuleError{
		Code:    "outstanding_fines",
		Message: "You have outstanding fines. Please pay them before borrowing",
	}
	ErrAlreadyBorrowed = &RuleError{
		Code:    "already_borrowed",
		Message: "You already have an active loan for this book",
	}
	ErrLoanAlreadyReturned = &RuleError{
		Code:    "loan_already_returned",
		Message: "Loan has already been returned",
	}
	ErrBookHasActiveLoans = &RuleError{
		Code:    "book_has_active_loans",
		Message: "Cannot delete book with active loans",
	}
	ErrCopiesOnLoan = &RuleError{
		Code:    "copies_on_loan",
		Message: "Total copies cannot be lower than the number of copies on loan",
	}
)
