package lending

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/libris-backend/internal/domain"
	"github.com/heartmarshall/libris-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// List returns all loans, newest first. Overdue fines are brought up to date
// first; a failed sweep is logged and does not block the read.
func (s *Service) List(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, domain.NewValidationError("status", "must be active or returned")
	}

	s.sweep(ctx, filter.UserID)

	loans, err := s.loans.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return loans, nil
}

// ListByUser returns a member's loans after sweeping that member's fines.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Loan, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("userId", "required")
	}
	return s.List(ctx, domain.LoanFilter{UserID: &userID})
}

// Get returns a loan with its book and borrower.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	l, err := s.loans.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return l, nil
}

func (s *Service) sweep(ctx context.Context, userID *uuid.UUID) {
	if s.sweeper == nil {
		return
	}
	if _, err := s.sweeper.Sweep(ctx, userID); err != nil {
		s.log.WarnContext(ctx, "inline fine sweep failed", slog.String("error", err.Error()))
	}
}

// ---------------------------------------------------------------------------
// Borrow
// ---------------------------------------------------------------------------

// Borrow lends one copy of a book to a member. Preconditions are checked in
// a fixed order and the first failure is returned. The copy is taken with a
// conditional decrement, so concurrent borrows never overdraw availability.
func (s *Service) Borrow(ctx context.Context, input BorrowInput) (*domain.Loan, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	book, err := s.books.GetByID(ctx, input.BookID)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if !book.HasAvailableCopy() {
		return nil, domain.ErrNoAvailableCopies
	}

	user, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUnknownMember
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !user.IsActive() {
		return nil, domain.ErrAccountInactive
	}

	owes, err := s.fines.HasUnpaid(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("check unpaid fines: %w", err)
	}
	if owes {
		return nil, domain.ErrOutstandingFines
	}

	borrowed, err := s.loans.HasActive(ctx, input.UserID, input.BookID)
	if err != nil {
		return nil, fmt.Errorf("check active loan: %w", err)
	}
	if borrowed {
		return nil, domain.ErrAlreadyBorrowed
	}

	now := s.clock.Now()
	dueAt := now.Add(s.loanPeriod)
	if input.DueDate != nil {
		if !input.DueDate.After(now) {
			return nil, domain.NewValidationError("dueDate", "must be in the future")
		}
		dueAt = *input.DueDate
	}

	var loanID uuid.UUID
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		taken, takeErr := s.books.TakeCopy(txCtx, input.BookID)
		if takeErr != nil {
			return fmt.Errorf("take copy: %w", takeErr)
		}
		if !taken {
			return domain.ErrNoAvailableCopies
		}

		created, createErr := s.loans.Create(txCtx, &domain.Loan{
			ID:       uuid.New(),
			BookID:   input.BookID,
			UserID:   input.UserID,
			LoanedAt: now,
			DueAt:    dueAt,
			Status:   domain.LoanStatusActive,
		})
		if createErr != nil {
			return fmt.Errorf("create loan: %w", createErr)
		}
		loanID = created.ID

		if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     ctxutil.ActorFromCtx(txCtx),
			EntityType: domain.EntityTypeLoan,
			EntityID:   created.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"bookId": map[string]any{"new": input.BookID.String()},
				"userId": map[string]any{"new": input.UserID.String()},
				"dueAt":  map[string]any{"new": dueAt},
			},
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "book borrowed",
		slog.String("loan_id", loanID.String()),
		slog.String("book_id", input.BookID.String()),
		slog.String("user_id", input.UserID.String()),
	)

	return s.Get(ctx, loanID)
}

// ---------------------------------------------------------------------------
// Return / renew
// ---------------------------------------------------------------------------

// Update returns and/or renews a loan. A loan is returned when the status
// becomes returned or a return date is given; the book regains exactly one
// copy, however often the return is repeated.
func (s *Service) Update(ctx context.Context, input UpdateLoanInput) (*domain.Loan, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	returning := input.returns()
	var changed bool

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, getErr := s.loans.GetByIDForUpdate(txCtx, input.LoanID)
		if getErr != nil {
			return fmt.Errorf("get loan: %w", getErr)
		}
		if !current.IsActive() {
			return domain.ErrLoanAlreadyReturned
		}

		changes := make(map[string]any)

		if input.DueAt != nil && !input.DueAt.Equal(current.DueAt) {
			if !input.DueAt.After(current.LoanedAt) {
				return domain.NewValidationError("dueAt", "must be after the loan date")
			}
			if updErr := s.loans.UpdateDueDate(txCtx, current.ID, *input.DueAt); updErr != nil {
				return fmt.Errorf("update due date: %w", updErr)
			}
			changes["dueAt"] = map[string]any{"old": current.DueAt, "new": *input.DueAt}
		}

		if returning {
			now := s.clock.Now()
			returnedAt := now
			if input.ReturnedAt != nil {
				returnedAt = *input.ReturnedAt
				if returnedAt.Before(current.LoanedAt) {
					return domain.NewValidationError("returnedAt", "must not be before the loan date")
				}
				if returnedAt.After(now) {
					return domain.NewValidationError("returnedAt", "must not be in the future")
				}
			}
			if err := s.returnLoan(txCtx, current, returnedAt); err != nil {
				return err
			}
			changes["status"] = map[string]any{"old": string(current.Status), "new": string(domain.LoanStatusReturned)}
			changes["returnedAt"] = map[string]any{"new": returnedAt}
		}

		if len(changes) == 0 {
			return nil
		}
		changed = true

		if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     ctxutil.ActorFromCtx(txCtx),
			EntityType: domain.EntityTypeLoan,
			EntityID:   current.ID,
			Action:     domain.AuditActionUpdate,
			Changes:    changes,
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		msg := "loan renewed"
		if returning {
			msg = "loan returned"
		}
		s.log.InfoContext(ctx, msg, slog.String("loan_id", input.LoanID.String()))
	}

	return s.Get(ctx, input.LoanID)
}

// returnLoan marks an active loan returned and gives its copy back. It must
// run inside a transaction holding the loan row lock.
func (s *Service) returnLoan(ctx context.Context, loan *domain.Loan, returnedAt time.Time) error {
	marked, err := s.loans.MarkReturned(ctx, loan.ID, returnedAt)
	if err != nil {
		return fmt.Errorf("mark returned: %w", err)
	}
	if !marked {
		return domain.ErrLoanAlreadyReturned
	}

	restored, err := s.books.ReturnCopy(ctx, loan.BookID)
	if err != nil {
		return fmt.Errorf("return copy: %w", err)
	}
	if !restored {
		// Availability already at total: the counter drifted. Keep the
		// return, it is the member-facing fact.
		s.log.WarnContext(ctx, "book availability already at total on return",
			slog.String("loan_id", loan.ID.String()),
			slog.String("book_id", loan.BookID.String()),
		)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

// Delete removes a loan record. Deleting an active loan gives its copy back.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, getErr := s.loans.GetByIDForUpdate(txCtx, id)
		if getErr != nil {
			return fmt.Errorf("get loan: %w", getErr)
		}

		if _, delErr := s.loans.Delete(txCtx, id); delErr != nil {
			return fmt.Errorf("delete loan: %w", delErr)
		}

		if current.IsActive() {
			if _, retErr := s.books.ReturnCopy(txCtx, current.BookID); retErr != nil {
				return fmt.Errorf("return copy: %w", retErr)
			}
		}

		if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     ctxutil.ActorFromCtx(txCtx),
			EntityType: domain.EntityTypeLoan,
			EntityID:   id,
			Action:     domain.AuditActionDelete,
			Changes: map[string]any{
				"bookId": map[string]any{"old": current.BookID.String()},
				"userId": map[string]any{"old": current.UserID.String()},
				"status": map[string]any{"old": string(current.Status)},
			},
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "loan deleted", slog.String("loan_id", id.String()))
	return nil
}
