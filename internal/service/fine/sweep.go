package fine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/libris-backend/internal/domain"
)

// Sweep charges every active loan that is past due. An unpaid fine is created
// or raised to the current amount; paid fines are never touched. userID
// limits the sweep to one member's loans.
//
// A failure on one loan is logged and counted; the sweep goes on with the
// rest. Only a failure to list overdue loans aborts it.
func (s *Service) Sweep(ctx context.Context, userID *uuid.UUID) (domain.SweepResult, error) {
	now := s.clock.Now()

	loans, err := s.loans.ListOverdue(ctx, now, userID)
	if err != nil {
		return domain.SweepResult{}, fmt.Errorf("list overdue loans: %w", err)
	}

	result := domain.SweepResult{Scanned: len(loans)}
	for _, loan := range loans {
		charge, ok := domain.NewOverdueCharge(loan, now, s.perDayRate)
		if !ok {
			continue
		}

		f, outcome, chargeErr := s.charge(ctx, charge, now)
		if chargeErr != nil {
			result.Failed++
			s.log.ErrorContext(ctx, "overdue charge failed",
				slog.String("loan_id", loan.ID.String()),
				slog.String("error", chargeErr.Error()),
			)
			continue
		}

		switch outcome {
		case domain.ChargeCreated:
			result.Created = append(result.Created, *f)
		case domain.ChargeUpdated:
			result.Updated = append(result.Updated, *f)
		}
	}

	if len(result.Created) > 0 || len(result.Updated) > 0 || result.Failed > 0 {
		s.log.InfoContext(ctx, "overdue sweep finished",
			slog.Int("scanned", result.Scanned),
			slog.Int("created", len(result.Created)),
			slog.Int("updated", len(result.Updated)),
			slog.Int("failed", result.Failed),
		)
	}

	return result, nil
}

func (s *Service) charge(ctx context.Context, charge domain.OverdueCharge, now time.Time) (*domain.Fine, domain.ChargeOutcome, error) {
	var (
		f       *domain.Fine
		outcome domain.ChargeOutcome
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var upsertErr error
		f, outcome, upsertErr = s.fines.UpsertOverdue(txCtx, charge, now)
		if upsertErr != nil {
			return fmt.Errorf("upsert overdue fine: %w", upsertErr)
		}
		if outcome == domain.ChargeUnchanged {
			return nil
		}

		action := domain.AuditActionCreate
		if outcome == domain.ChargeUpdated {
			action = domain.AuditActionUpdate
		}
		// System actor: the sweep is not attributed to a member.
		if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			EntityType: domain.EntityTypeFine,
			EntityID:   f.ID,
			Action:     action,
			Changes: map[string]any{
				"amount":      map[string]any{"new": f.Amount},
				"daysOverdue": charge.DaysOverdue,
			},
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return nil, domain.ChargeUnchanged, err
	}
	return f, outcome, nil
}
