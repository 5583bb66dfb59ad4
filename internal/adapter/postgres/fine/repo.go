// Package fine implements the fine repository using PostgreSQL.
package fine

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/libris-backend/internal/adapter/postgres"
	"github.com/heartmarshall/libris-backend/internal/domain"
)

const (
	columns = "id, user_id, loan_id, amount, reason, status, created_at, updated_at"

	joinedColumns = `f.id, f.user_id, f.loan_id, f.amount, f.reason, f.status, f.created_at, f.updated_at,
	u.name AS user_name, u.email AS user_email,
	l.due_at AS loan_due_at, l.returned_at AS loan_returned_at,
	b.id AS book_id, b.title AS book_title, b.author AS book_author, b.isbn AS book_isbn`

	joins = `fines f
	JOIN users u ON u.id = f.user_id
	JOIN loans l ON l.id = f.loan_id
	JOIN books b ON b.id = l.book_id`

	// LoanConstraint is the unique index allowing one fine per loan.
	LoanConstraint = "fines_loan_id_key"
)

// Repo provides fine persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new fine repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	LoanID    uuid.UUID `db:"loan_id"`
	Amount    float64   `db:"amount"`
	Reason    string    `db:"reason"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Fine {
	return domain.Fine{
		ID:        r.ID,
		UserID:    r.UserID,
		LoanID:    r.LoanID,
		Amount:    r.Amount,
		Reason:    r.Reason,
		Status:    domain.FineStatus(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type joinedRow struct {
	row
	UserName       string     `db:"user_name"`
	UserEmail      string     `db:"user_email"`
	LoanDueAt      time.Time  `db:"loan_due_at"`
	LoanReturnedAt *time.Time `db:"loan_returned_at"`
	BookID         uuid.UUID  `db:"book_id"`
	BookTitle      string     `db:"book_title"`
	BookAuthor     string     `db:"book_author"`
	BookISBN       *string    `db:"book_isbn"`
}

func (r joinedRow) toDomain() domain.Fine {
	f := r.row.toDomain()
	f.User = &domain.UserSummary{ID: r.UserID, Name: r.UserName, Email: r.UserEmail}
	f.Loan = &domain.FineLoan{
		ID:         r.LoanID,
		DueAt:      r.LoanDueAt,
		ReturnedAt: r.LoanReturnedAt,
		Book:       &domain.BookSummary{ID: r.BookID, Title: r.BookTitle, Author: r.BookAuthor, ISBN: r.BookISBN},
	}
	return f
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns fines newest first, with member, loan and book details.
func (r *Repo) List(ctx context.Context, filter domain.FineFilter) ([]domain.Fine, error) {
	b := postgres.Builder().
		Select(joinedColumns).
		From(joins).
		OrderBy("f.created_at DESC", "f.id ASC")

	if filter.Status != nil {
		b = b.Where(sq.Eq{"f.status": string(*filter.Status)})
	}
	if filter.UserID != nil {
		b = b.Where(sq.Eq{"f.user_id": *filter.UserID})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list fines: %w", err)
	}

	var rows []joinedRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list fines: %w", err)
	}

	fines := make([]domain.Fine, len(rows))
	for i, rw := range rows {
		fines[i] = rw.toDomain()
	}
	return fines, nil
}

const getByIDSQL = `SELECT ` + joinedColumns + ` FROM ` + joins + ` WHERE f.id = $1`

// GetByID returns a fine with member, loan and book details.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Fine, error) {
	var rw joinedRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, getByIDSQL, id); err != nil {
		return nil, postgres.MapError(err, "fine", id)
	}
	f := rw.toDomain()
	return &f, nil
}

const hasUnpaidSQL = `SELECT EXISTS (SELECT 1 FROM fines WHERE user_id = $1 AND status = 'unpaid')`

// HasUnpaid reports whether the member owes any fine.
func (r *Repo) HasUnpaid(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, hasUnpaidSQL, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check unpaid fines: %w", err)
	}
	return exists, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO fines (id, user_id, loan_id, amount, reason, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
RETURNING ` + columns

// Create inserts a fine. A second fine for the same loan yields
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, f *domain.Fine) (*domain.Fine, error) {
	createdAt := f.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var rw row
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, createSQL,
		f.ID, f.UserID, f.LoanID, f.Amount, f.Reason, string(f.Status), createdAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "fine", f.ID)
	}
	created := rw.toDomain()
	return &created, nil
}

const updateStatusSQL = `
UPDATE fines SET status = $2, updated_at = now()
 WHERE id = $1
RETURNING ` + columns

// UpdateStatus sets the payment status of a fine.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FineStatus) (*domain.Fine, error) {
	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, updateStatusSQL, id, string(status)); err != nil {
		return nil, postgres.MapError(err, "fine", id)
	}
	f := rw.toDomain()
	return &f, nil
}

const deleteSQL = `DELETE FROM fines WHERE id = $1 RETURNING ` + columns

// Delete removes a fine and returns the deleted row.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (*domain.Fine, error) {
	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, deleteSQL, id); err != nil {
		return nil, postgres.MapError(err, "fine", id)
	}
	f := rw.toDomain()
	return &f, nil
}

// ---------------------------------------------------------------------------
// Overdue sweep
// ---------------------------------------------------------------------------

// upsertOverdueSQL inserts the fine of an overdue loan or raises the amount
// of the existing unpaid one. Paid fines and fines already at the amount
// are left alone, in which case no row is returned.
const upsertOverdueSQL = `
INSERT INTO fines (id, user_id, loan_id, amount, reason, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, 'unpaid', $6, $6)
ON CONFLICT (loan_id) DO UPDATE
   SET amount = EXCLUDED.amount,
       reason = EXCLUDED.reason,
       updated_at = EXCLUDED.updated_at
 WHERE fines.status = 'unpaid' AND fines.amount <> EXCLUDED.amount
RETURNING ` + columns + `, (xmax = 0) AS inserted`

type upsertRow struct {
	row
	Inserted bool `db:"inserted"`
}

// UpsertOverdue stores the charge for an overdue loan. The returned fine is
// nil when the outcome is domain.ChargeUnchanged.
func (r *Repo) UpsertOverdue(ctx context.Context, charge domain.OverdueCharge, now time.Time) (*domain.Fine, domain.ChargeOutcome, error) {
	var rows []upsertRow
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, upsertOverdueSQL,
		uuid.New(), charge.UserID, charge.LoanID, charge.Amount, charge.Reason, now,
	)
	if err != nil {
		return nil, domain.ChargeUnchanged, postgres.MapError(err, "fine for loan", charge.LoanID)
	}
	if len(rows) == 0 {
		return nil, domain.ChargeUnchanged, nil
	}

	f := rows[0].toDomain()
	if rows[0].Inserted {
		return &f, domain.ChargeCreated, nil
	}
	return &f, domain.ChargeUpdated, nil
}
