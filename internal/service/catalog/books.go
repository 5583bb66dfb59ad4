package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/libris-backend/internal/domain"
	"github.com/heartmarshall/libris-backend/pkg/ctxutil"
)

// ListBooks returns the whole catalog ordered by title.
func (s *Service) ListBooks(ctx context.Context) ([]domain.Book, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// GetBook returns a book together with its active loans.
func (s *Service) GetBook(ctx context.Context, id uuid.UUID) (*domain.BookDetails, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}

	active := domain.LoanStatusActive
	loans, err := s.loans.List(ctx, domain.LoanFilter{BookID: &id, Status: &active})
	if err != nil {
		return nil, fmt.Errorf("list active loans: %w", err)
	}

	return &domain.BookDetails{Book: *book, ActiveLoans: loans}, nil
}

// CreateBook adds a book with every copy available.
func (s *Service) CreateBook(ctx context.Context, input CreateBookInput) (*domain.Book, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	total := 1
	if input.TotalCopies != nil {
		total = *input.TotalCopies
	}

	book := &domain.Book{
		ID:              uuid.New(),
		Title:           strings.TrimSpace(input.Title),
		Author:          strings.TrimSpace(input.Author),
		ISBN:            trimOrNil(input.ISBN),
		Category:        trimOrNil(input.Category),
		TotalCopies:     total,
		AvailableCopies: total,
	}

	var created *domain.Book
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.books.Create(txCtx, book)
		if createErr != nil {
			return fmt.Errorf("create book: %w", createErr)
		}

		if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     ctxutil.ActorFromCtx(txCtx),
			EntityType: domain.EntityTypeBook,
			EntityID:   created.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"title":        map[string]any{"new": created.Title},
				"total_copies": map[string]any{"new": created.TotalCopies},
			},
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "book created",
		slog.String("book_id", created.ID.String()),
		slog.String("title", created.Title),
		slog.Int("total_copies", created.TotalCopies),
	)

	return created, nil
}

// UpdateBook applies a partial update. Changing the number of copies shifts
// availability by the same amount; the update is refused if fewer copies
// would remain than are currently on loan.
func (s *Service) UpdateBook(ctx context.Context, input UpdateBookInput) (*domain.Book, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.BookUpdateParams{
		Title:    trimPtr(input.Title),
		Author:   trimPtr(input.Author),
		ISBN:     trimPtr(input.ISBN),
		Category: trimPtr(input.Category),
	}

	var updated *domain.Book
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, getErr := s.books.GetByIDForUpdate(txCtx, input.BookID)
		if getErr != nil {
			return fmt.Errorf("get book: %w", getErr)
		}

		if input.TotalCopies != nil && *input.TotalCopies != old.TotalCopies {
			available := old.AvailableCopies + (*input.TotalCopies - old.TotalCopies)
			if available < 0 {
				return domain.ErrCopiesOnLoan
			}
			params.TotalCopies = input.TotalCopies
			params.AvailableCopies = &available
		}

		var updateErr error
		updated, updateErr = s.books.Update(txCtx, input.BookID, params)
		if updateErr != nil {
			return fmt.Errorf("update book: %w", updateErr)
		}

		changes := buildBookChanges(old, updated)
		if len(changes) > 0 {
			if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
				UserID:     ctxutil.ActorFromCtx(txCtx),
				EntityType: domain.EntityTypeBook,
				EntityID:   input.BookID,
				Action:     domain.AuditActionUpdate,
				Changes:    changes,
			}); auditErr != nil {
				return fmt.Errorf("audit log: %w", auditErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "book updated", slog.String("book_id", input.BookID.String()))

	return updated, nil
}

// DeleteBook removes a book that has no active loans and returns it.
func (s *Service) DeleteBook(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	var deleted *domain.Book
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, getErr := s.books.GetByIDForUpdate(txCtx, id); getErr != nil {
			return fmt.Errorf("get book: %w", getErr)
		}

		active, countErr := s.loans.CountActiveByBook(txCtx, id)
		if countErr != nil {
			return fmt.Errorf("count active loans: %w", countErr)
		}
		if active > 0 {
			return domain.ErrBookHasActiveLoans
		}

		var deleteErr error
		deleted, deleteErr = s.books.Delete(txCtx, id)
		if deleteErr != nil {
			return fmt.Errorf("delete book: %w", deleteErr)
		}

		if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     ctxutil.ActorFromCtx(txCtx),
			EntityType: domain.EntityTypeBook,
			EntityID:   id,
			Action:     domain.AuditActionDelete,
			Changes: map[string]any{
				"title": map[string]any{"old": deleted.Title},
			},
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "book deleted",
		slog.String("book_id", id.String()),
		slog.String("title", deleted.Title),
	)

	return deleted, nil
}

// trimPtr trims whitespace, keeping an empty string so the field can be cleared.
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

// buildBookChanges returns only changed fields for audit.
func buildBookChanges(old, updated *domain.Book) map[string]any {
	changes := make(map[string]any)
	if old.Title != updated.Title {
		changes["title"] = map[string]any{"old": old.Title, "new": updated.Title}
	}
	if old.Author != updated.Author {
		changes["author"] = map[string]any{"old": old.Author, "new": updated.Author}
	}
	if deref(old.ISBN) != deref(updated.ISBN) {
		changes["isbn"] = map[string]any{"old": old.ISBN, "new": updated.ISBN}
	}
	if deref(old.Category) != deref(updated.Category) {
		changes["category"] = map[string]any{"old": old.Category, "new": updated.Category}
	}
	if old.TotalCopies != updated.TotalCopies {
		changes["total_copies"] = map[string]any{"old": old.TotalCopies, "new": updated.TotalCopies}
	}
	if old.AvailableCopies != updated.AvailableCopies {
		changes["available_copies"] = map[string]any{"old": old.AvailableCopies, "new": updated.AvailableCopies}
	}
	return changes
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
