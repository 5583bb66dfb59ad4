// Package user implements the member repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/libris-backend/internal/adapter/postgres"
	"github.com/heartmarshall/libris-backend/internal/domain"
)

const columns = "id, name, email, role, status, created_at, updated_at"

// Repo provides member persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Role      string    `db:"role"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.User {
	return domain.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Role:      domain.UserRole(r.Role),
		Status:    domain.UserStatus(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns members newest first. A non-empty filter.Search matches
// name or email, case-insensitively.
func (r *Repo) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	b := postgres.Builder().
		Select(columns).
		From("users").
		OrderBy("created_at DESC", "id ASC")

	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + escapeLike(s) + "%"
		b = b.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"email": pattern},
		})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list users: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, len(rows))
	for i, rw := range rows {
		users[i] = rw.toDomain()
	}
	return users, nil
}

const getByIDSQL = `SELECT ` + columns + ` FROM users WHERE id = $1`

// GetByID returns a member by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, getByIDSQL, id); err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	u := rw.toDomain()
	return &u, nil
}

const getByEmailSQL = `SELECT ` + columns + ` FROM users WHERE email = $1`

// GetByEmail returns a member by email. Emails are stored lowercased.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, getByEmailSQL, email); err != nil {
		return nil, postgres.MapError(err, "user", email)
	}
	u := rw.toDomain()
	return &u, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO users (id, name, email, role, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
RETURNING ` + columns

// Create inserts a member. A duplicate email yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var rw row
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, createSQL,
		u.ID, u.Name, u.Email, string(u.Role), string(u.Status), createdAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}

	created := rw.toDomain()
	return &created, nil
}

const updateStatusSQL = `
UPDATE users SET status = $2, updated_at = now()
 WHERE id = $1
RETURNING ` + columns

// UpdateStatus sets the membership status.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UserStatus) (*domain.User, error) {
	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, updateStatusSQL, id, string(status)); err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	u := rw.toDomain()
	return &u, nil
}

// escapeLike escapes LIKE wildcards in user input.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
