// Package catalog manages the book catalog: listing, details and edits made
// by librarians. Availability changes caused by lending live in the lending
// package; this package only keeps the counter consistent when the number of
// copies changes.
package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/libris-backend/internal/domain"
)

type bookRepo interface {
	List(ctx context.Context) ([]domain.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	Create(ctx context.Context, b *domain.Book) (*domain.Book, error)
	Update(ctx context.Context, id uuid.UUID, params domain.BookUpdateParams) (*domain.Book, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Book, error)
}

type loanRepo interface {
	List(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error)
	CountActiveByBook(ctx context.Context, bookID uuid.UUID) (int, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides catalog operations.
type Service struct {
	books bookRepo
	loans loanRepo
	audit auditLogger
	tx    txManager
	log   *slog.Logger
}

// NewService creates a new catalog service.
func NewService(
	log *slog.Logger,
	books bookRepo,
	loans loanRepo,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		books: books,
		loans: loans,
		audit: audit,
		tx:    tx,
		log:   log.With("service", "catalog"),
	}
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
