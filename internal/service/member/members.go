package member

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/libris-backend/internal/domain"
	"github.com/heartmarshall/libris-backend/pkg/ctxutil"
)

// List returns members newest first, optionally filtered by a search term
// over name and email.
func (s *Service) List(ctx context.Context, search string) ([]domain.User, error) {
	users, err := s.users.List(ctx, domain.UserFilter{Search: search})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Get returns a member by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Register returns the member with the given id or email, creating an
// active borrower if none exists. created reports whether a row was inserted.
func (s *Service) Register(ctx context.Context, input RegisterInput) (u *domain.User, created bool, err error) {
	if err := input.Validate(); err != nil {
		return nil, false, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	if input.ID != nil {
		existing, getErr := s.users.GetByID(ctx, *input.ID)
		if getErr == nil {
			return existing, false, nil
		}
		if !errors.Is(getErr, domain.ErrNotFound) {
			return nil, false, fmt.Errorf("get user: %w", getErr)
		}
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get user by email: %w", err)
	}

	id := uuid.New()
	if input.ID != nil {
		id = *input.ID
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = domain.DefaultMemberName
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		u, createErr = s.users.Create(txCtx, &domain.User{
			ID:     id,
			Name:   name,
			Email:  email,
			Role:   domain.UserRoleBorrower,
			Status: domain.UserStatusActive,
		})
		if createErr != nil {
			return fmt.Errorf("create user: %w", createErr)
		}

		if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     &u.ID,
			EntityType: domain.EntityTypeUser,
			EntityID:   u.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"email": map[string]any{"new": u.Email},
			},
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	s.log.InfoContext(ctx, "member registered",
		slog.String("user_id", u.ID.String()),
		slog.String("email", u.Email),
	)

	return u, true, nil
}

// UpdateStatus activates or deactivates a member. Existing loans are not
// affected; an inactive member only loses the right to borrow.
func (s *Service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, getErr := s.users.GetByID(txCtx, input.UserID)
		if getErr != nil {
			return fmt.Errorf("get user: %w", getErr)
		}

		var updateErr error
		updated, updateErr = s.users.UpdateStatus(txCtx, input.UserID, input.Status)
		if updateErr != nil {
			return fmt.Errorf("update user status: %w", updateErr)
		}

		if old.Status == updated.Status {
			return nil
		}
		if auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     ctxutil.ActorFromCtx(txCtx),
			EntityType: domain.EntityTypeUser,
			EntityID:   input.UserID,
			Action:     domain.AuditActionUpdate,
			Changes: map[string]any{
				"status": map[string]any{"old": string(old.Status), "new": string(updated.Status)},
			},
		}); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "member status updated",
		slog.String("user_id", input.UserID.String()),
		slog.String("status", string(updated.Status)),
	)

	return updated, nil
}
