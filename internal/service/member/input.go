package member

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/libris-backend/internal/domain"
)

// RegisterInput identifies a member signing in for the first time.
type RegisterInput struct {
	ID    *uuid.UUID // identity-provider subject; nil = generate
	Email string
	Name  string
}

// Validate checks all fields and collects all errors.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	if i.ID != nil && *i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "invalid"})
	}

	email := strings.TrimSpace(i.Email)
	if email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}

	if len(i.Name) > 255 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 255 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateStatusInput toggles a membership.
type UpdateStatusInput struct {
	UserID uuid.UUID
	Status domain.UserStatus
}

// Validate checks all fields and collects all errors.
func (i UpdateStatusInput) Validate() error {
	var errs []domain.FieldError
	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be active or inactive"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
