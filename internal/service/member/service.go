// Package member manages library membership: registration on first sign-in,
// lookups and the active/inactive toggle used to suspend borrowing.
package member

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/libris-backend/internal/domain"
)

type userRepo interface {
	List(ctx context.Context, filter domain.UserFilter) ([]domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UserStatus) (*domain.User, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides member operations.
type Service struct {
	users userRepo
	audit auditLogger
	tx    txManager
	log   *slog.Logger
}

// NewService creates a new member service.
func NewService(log *slog.Logger, users userRepo, audit auditLogger, tx txManager) *Service {
	return &Service{
		users: users,
		audit: audit,
		tx:    tx,
		log:   log.With("service", "member"),
	}
}
