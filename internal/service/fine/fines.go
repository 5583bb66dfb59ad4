package fine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/libris-backend/internal/domain"
	"github.com/heartmarshall/libris-backend/pkg/ctxutil"
)

// List returns fines newest first, optionally filtered by status and member.
func (s *Service) List(ctx context.Context, filter domain.FineFilter) ([]domain.Fine, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, domain.NewValidationError("status", "must be paid or unpaid")
	}
	fines, err := s.fines.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list fines: %w", err)
	}
	return fines, nil
}

// ListByUser returns a member's fines.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Fine, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("userId", "required")
	}
	return s.List(ctx, domain.FineFilter{UserID: &userID})
}

// Get returns a fine with member, loan and book details.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Fine, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	f, err := s.fines.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get fine: %w", err)
	}
	return f, nil
}

// Create issues an unpaid fine against a member's loan. A loan carries at
// most one fine.
func (s *Service) Create(ctx context.Context, input CreateFineInput) (*domain.Fine, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		reason = domain.DefaultFineReason
	}

	var created *domain.Fine
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		loan, getErr := s.loans.GetByID(txCtx, input.LoanID)
		if getErr != nil {
			return fmt.Errorf("get loan: %w", getErr)
		}
		if loan.UserID != input.UserID {
			return domain.NewValidationError("loanId", "loan does not belong to this user")
		}

		var createErr error
		created, createErr = s.fines.Create(txCtx, &domain.Fine{
			ID:        uuid.New(),
			UserID:    input.UserID,
			LoanID:    input.LoanID,
			Amount:    roundCents(input.Amount),
			Reason:    reason,
			Status:    domain.FineStatusUnpaid,
			CreatedAt: s.clock.Now(),
		})
		if createErr != nil {
			return fmt.Errorf("create fine: %w", createErr)
		}

		if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     ctxutil.ActorFromCtx(txCtx),
			EntityType: domain.EntityTypeFine,
			EntityID:   created.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"amount": map[string]any{"new": created.Amount},
				"reason": map[string]any{"new": created.Reason},
			},
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "fine created",
		slog.String("fine_id", created.ID.String()),
		slog.String("loan_id", created.LoanID.String()),
		slog.Float64("amount", created.Amount),
	)

	return created, nil
}

// UpdateStatus marks a fine paid or unpaid. Only the status changes.
func (s *Service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*domain.Fine, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, getErr := s.fines.GetByID(txCtx, input.FineID)
		if getErr != nil {
			return fmt.Errorf("get fine: %w", getErr)
		}

		if _, updateErr := s.fines.UpdateStatus(txCtx, input.FineID, input.Status); updateErr != nil {
			return fmt.Errorf("update fine status: %w", updateErr)
		}

		if old.Status == input.Status {
			return nil
		}
		if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     ctxutil.ActorFromCtx(txCtx),
			EntityType: domain.EntityTypeFine,
			EntityID:   input.FineID,
			Action:     domain.AuditActionUpdate,
			Changes: map[string]any{
				"status": map[string]any{"old": string(old.Status), "new": string(input.Status)},
			},
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "fine status updated",
		slog.String("fine_id", input.FineID.String()),
		slog.String("status", string(input.Status)),
	)

	// Re-read for the member, loan and book context.
	return s.Get(ctx, input.FineID)
}

// Delete removes a fine.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		deleted, deleteErr := s.fines.Delete(txCtx, id)
		if deleteErr != nil {
			return fmt.Errorf("delete fine: %w", deleteErr)
		}

		if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     ctxutil.ActorFromCtx(txCtx),
			EntityType: domain.EntityTypeFine,
			EntityID:   id,
			Action:     domain.AuditActionDelete,
			Changes: map[string]any{
				"amount": map[string]any{"old": deleted.Amount},
				"status": map[string]any{"old": string(deleted.Status)},
			},
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "fine deleted", slog.String("fine_id", id.String()))
	return nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
