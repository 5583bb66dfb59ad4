// Package lending is the loan rule engine: borrowing, returning and renewing
// books while keeping copy availability consistent with the active loans.
package lending

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/libris-backend/internal/domain"
)

// ErrUnknownMember is returned by Borrow when the borrower does not exist.
var ErrUnknownMember = fmt.Errorf("member: %w", domain.ErrNotFound)

type bookRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	TakeCopy(ctx context.Context, id uuid.UUID) (bool, error)
	ReturnCopy(ctx context.Context, id uuid.UUID) (bool, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type loanRepo interface {
	List(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
	HasActive(ctx context.Context, userID, bookID uuid.UUID) (bool, error)
	Create(ctx context.Context, l *domain.Loan) (*domain.Loan, error)
	MarkReturned(ctx context.Context, id uuid.UUID, returnedAt time.Time) (bool, error)
	UpdateDueDate(ctx context.Context, id uuid.UUID, dueAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
}

type fineChecker interface {
	HasUnpaid(ctx context.Context, userID uuid.UUID) (bool, error)
}

type fineSweeper interface {
	Sweep(ctx context.Context, userID *uuid.UUID) (domain.SweepResult, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the lending rules.
type Service struct {
	books      bookRepo
	users      userRepo
	loans      loanRepo
	fines      fineChecker
	sweeper    fineSweeper
	audit      auditLogger
	tx         txManager
	clock      clockwork.Clock
	loanPeriod time.Duration
	log        *slog.Logger
}

// Deps groups the collaborators of the lending service.
type Deps struct {
	Books   bookRepo
	Users   userRepo
	Loans   loanRepo
	Fines   fineChecker
	Sweeper fineSweeper
	Audit   auditLogger
	Tx      txManager
}

// NewService creates a new lending service. A non-positive loanPeriod falls
// back to domain.DefaultLoanPeriod.
func NewService(log *slog.Logger, deps Deps, clock clockwork.Clock, loanPeriod time.Duration) *Service {
	if loanPeriod <= 0 {
		loanPeriod = domain.DefaultLoanPeriod
	}
	return &Service{
		books:      deps.Books,
		users:      deps.Users,
		loans:      deps.Loans,
		fines:      deps.Fines,
		sweeper:    deps.Sweeper,
		audit:      deps.Audit,
		tx:         deps.Tx,
		clock:      clock,
		loanPeriod: loanPeriod,
		log:        log.With("service", "lending"),
	}
}

// Now returns the service clock's current time. Handlers use it to derive
// the display status of loans consistently with the rules.
func (s *Service) Now() time.Time {
	return s.clock.Now()
}
