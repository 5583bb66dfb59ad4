// Package fine manages overdue fines: the sweep that charges overdue loans,
// manual fines, and payment.
package fine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/libris-backend/internal/domain"
)

type fineRepo interface {
	List(ctx context.Context, filter domain.FineFilter) ([]domain.Fine, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Fine, error)
	Create(ctx context.Context, f *domain.Fine) (*domain.Fine, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FineStatus) (*domain.Fine, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Fine, error)
	UpsertOverdue(ctx context.Context, charge domain.OverdueCharge, now time.Time) (*domain.Fine, domain.ChargeOutcome, error)
}

type loanRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
	ListOverdue(ctx context.Context, now time.Time, userID *uuid.UUID) ([]domain.Loan, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides fine operations.
type Service struct {
	fines      fineRepo
	loans      loanRepo
	audit      auditLogger
	tx         txManager
	clock      clockwork.Clock
	perDayRate float64
	log        *slog.Logger
}

// NewService creates a new fine service. perDayRate is charged for every
// started day a loan is overdue; a non-positive value falls back to
// domain.DefaultFinePerDay.
func NewService(
	log *slog.Logger,
	fines fineRepo,
	loans loanRepo,
	audit auditLogger,
	tx txManager,
	clock clockwork.Clock,
	perDayRate float64,
) *Service {
	if perDayRate <= 0 {
		perDayRate = domain.DefaultFinePerDay
	}
	return &Service{
		fines:      fines,
		loans:      loans,
		audit:      audit,
		tx:         tx,
		clock:      clock,
		perDayRate: perDayRate,
		log:        log.With("service", "fine"),
	}
}
