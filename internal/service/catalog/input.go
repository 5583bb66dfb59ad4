package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/libris-backend/internal/domain"
)

const (
	maxTitleLen    = 255
	maxAuthorLen   = 255
	minISBNLen     = 10
	maxISBNLen     = 17
	maxCategoryLen = 100
)

// CreateBookInput holds the parameters for adding a book to the catalog.
type CreateBookInput struct {
	Title       string
	Author      string
	ISBN        *string
	Category    *string
	TotalCopies *int // nil = 1
}

// Validate checks all fields and collects all errors.
func (i CreateBookInput) Validate() error {
	var errs []domain.FieldError

	errs = appendRequired(errs, "title", i.Title, maxTitleLen)
	errs = appendRequired(errs, "author", i.Author, maxAuthorLen)
	errs = appendISBN(errs, i.ISBN)
	errs = appendCategory(errs, i.Category)

	if i.TotalCopies != nil && *i.TotalCopies < 1 {
		errs = append(errs, domain.FieldError{Field: "totalCopies", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateBookInput holds the parameters of a partial book update.
type UpdateBookInput struct {
	BookID      uuid.UUID
	Title       *string
	Author      *string
	ISBN        *string
	Category    *string
	TotalCopies *int
}

// Validate checks all fields and collects all errors.
func (i UpdateBookInput) Validate() error {
	var errs []domain.FieldError

	if i.BookID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Title == nil && i.Author == nil && i.ISBN == nil && i.Category == nil && i.TotalCopies == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Title != nil {
		errs = appendRequired(errs, "title", *i.Title, maxTitleLen)
	}
	if i.Author != nil {
		errs = appendRequired(errs, "author", *i.Author, maxAuthorLen)
	}
	errs = appendISBN(errs, i.ISBN)
	errs = appendCategory(errs, i.Category)

	if i.TotalCopies != nil && *i.TotalCopies < 1 {
		errs = append(errs, domain.FieldError{Field: "totalCopies", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func appendRequired(errs []domain.FieldError, field, value string, limit int) []domain.FieldError {
	v := strings.TrimSpace(value)
	if v == "" {
		return append(errs, domain.FieldError{Field: field, Message: "required"})
	}
	if utf8.RuneCountInString(v) > limit {
		return append(errs, domain.FieldError{Field: field, Message: "too long"})
	}
	return errs
}

func appendISBN(errs []domain.FieldError, isbn *string) []domain.FieldError {
	if isbn == nil {
		return errs
	}
	v := strings.TrimSpace(*isbn)
	if v == "" {
		return errs
	}
	if len(v) < minISBNLen || len(v) > maxISBNLen {
		return append(errs, domain.FieldError{Field: "isbn", Message: "must be 10 to 17 characters"})
	}
	return errs
}

func appendCategory(errs []domain.FieldError, category *string) []domain.FieldError {
	if category != nil && utf8.RuneCountInString(strings.TrimSpace(*category)) > maxCategoryLen {
		return append(errs, domain.FieldError{Field: "category", Message: "too long"})
	}
	return errs
}
