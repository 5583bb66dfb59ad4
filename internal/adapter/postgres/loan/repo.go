// Package loan implements the loan repository using PostgreSQL.
package loan

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
	columns = "l.id, l.book_id, l.user_id, l.loaned_at, l.due_at, l.returned_at, l.status, l.created_at, l.updated_at"

	joinedColumns = columns + `,
	b.title AS book_title, b.author AS book_author, b.isbn AS book_isbn,
	u.name AS user_name, u.email AS user_email`

	joins = `loans l
	JOIN books b ON b.id = l.book_id
	JOIN users u ON u.id = l.user_id`

	// ActiveUserBookConstraint is the partial unique index allowing one
	// active loan per member and book.
	ActiveUserBookConstraint = "loans_active_user_book_key"
)

// Repo provides loan persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new loan repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID         uuid.UUID  `db:"id"`
	BookID     uuid.UUID  `db:"book_id"`
	UserID     uuid.UUID  `db:"user_id"`
	LoanedAt   time.Time  `db:"loaned_at"`
	DueAt      time.Time  `db:"due_at"`
	ReturnedAt *time.Time `db:"returned_at"`
	Status     string     `db:"status"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

func (r row) toDomain() domain.Loan {
	return domain.Loan{
		ID:         r.ID,
		BookID:     r.BookID,
		UserID:     r.UserID,
		LoanedAt:   r.LoanedAt,
		DueAt:      r.DueAt,
		ReturnedAt: r.ReturnedAt,
		Status:     domain.LoanStatus(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type joinedRow struct {
	row
	BookTitle  string  `db:"book_title"`
	BookAuthor string  `db:"book_author"`
	BookISBN   *string `db:"book_isbn"`
	UserName   string  `db:"user_name"`
	UserEmail  string  `db:"user_email"`
}

func (r joinedRow) toDomain() domain.Loan {
	l := r.row.toDomain()
	l.Book = &domain.BookSummary{ID: r.BookID, Title: r.BookTitle, Author: r.BookAuthor, ISBN: r.BookISBN}
	l.User = &domain.UserSummary{ID: r.UserID, Name: r.UserName, Email: r.UserEmail}
	return l
}

func joinedToDomain(rows []joinedRow) []domain.Loan {
	loans := make([]domain.Loan, len(rows))
	for i, rw := range rows {
		loans[i] = rw.toDomain()
	}
	return loans
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns loans, newest first, with book and member summaries.
func (r *Repo) List(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	b := postgres.Builder().
		Select(joinedColumns).
		From(joins).
		OrderBy("l.loaned_at DESC", "l.id ASC")

	if filter.UserID != nil {
		b = b.Where(sq.Eq{"l.user_id": *filter.UserID})
	}
	if filter.BookID != nil {
		b = b.Where(sq.Eq{"l.book_id": *filter.BookID})
	}
	if filter.Status != nil {
		b = b.Where(sq.Eq{"l.status": string(*filter.Status)})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list loans: %w", err)
	}

	var rows []joinedRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return joinedToDomain(rows), nil
}

const getByIDSQL = `SELECT ` + joinedColumns + ` FROM ` + joins + ` WHERE l.id = $1`

// GetByID returns a loan with book and member summaries.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	var rw joinedRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, getByIDSQL, id); err != nil {
		return nil, postgres.MapError(err, "loan", id)
	}
	l := rw.toDomain()
	return &l, nil
}

const getForUpdateSQL = `SELECT ` + columns + ` FROM loans l WHERE l.id = $1 FOR UPDATE`

// GetByIDForUpdate returns a loan and locks its row until the surrounding
// transaction ends. Summaries are not populated.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, getForUpdateSQL, id); err != nil {
		return nil, postgres.MapError(err, "loan", id)
	}
	l := rw.toDomain()
	return &l, nil
}

const hasActiveSQL = `
SELECT EXISTS (
	SELECT 1 FROM loans WHERE user_id = $1 AND book_id = $2 AND status = 'active'
)`

// HasActive reports whether the member already has the book out.
func (r *Repo) HasActive(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	var exists bool
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, hasActiveSQL, userID, bookID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check active loan: %w", err)
	}
	return exists, nil
}

const countActiveByBookSQL = `SELECT count(*) FROM loans WHERE book_id = $1 AND status = 'active'`

// CountActiveByBook returns the number of copies of a book currently out.
func (r *Repo) CountActiveByBook(ctx context.Context, bookID uuid.UUID) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, countActiveByBookSQL, bookID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active loans: %w", err)
	}
	return n, nil
}

// ListOverdue returns active loans whose due date is before now.
// A non-nil userID restricts the result to one member.
func (r *Repo) ListOverdue(ctx context.Context, now time.Time, userID *uuid.UUID) ([]domain.Loan, error) {
	b := postgres.Builder().
		Select(columns).
		From("loans l").
		Where(sq.Eq{"l.status": string(domain.LoanStatusActive)}).
		Where(sq.Lt{"l.due_at": now}).
		OrderBy("l.due_at ASC")

	if userID != nil {
		b = b.Where(sq.Eq{"l.user_id": *userID})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list overdue loans: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list overdue loans: %w", err)
	}

	loans := make([]domain.Loan, len(rows))
	for i, rw := range rows {
		loans[i] = rw.toDomain()
	}
	return loans, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO loans (id, book_id, user_id, loaned_at, due_at, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, 'active', $4, $4)
RETURNING id, book_id, user_id, loaned_at, due_at, returned_at, status, created_at, updated_at`

// Create inserts an active loan. A second active loan for the same member
// and book yields domain.ErrAlreadyBorrowed.
func (r *Repo) Create(ctx context.Context, l *domain.Loan) (*domain.Loan, error) {
	var rw row
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, createSQL,
		l.ID, l.BookID, l.UserID, l.LoanedAt, l.DueAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err, ActiveUserBookConstraint) {
			return nil, domain.ErrAlreadyBorrowed
		}
		return nil, postgres.MapError(err, "loan", l.ID)
	}
	created := rw.toDomain()
	return &created, nil
}

const markReturnedSQL = `
UPDATE loans
   SET status = 'returned', returned_at = $2, updated_at = now()
 WHERE id = $1 AND status = 'active'`

// MarkReturned flips an active loan to returned. It reports false when the
// loan was not active, so only one caller can ever complete a return.
func (r *Repo) MarkReturned(ctx context.Context, id uuid.UUID, returnedAt time.Time) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, markReturnedSQL, id, returnedAt)
	if err != nil {
		return false, postgres.MapError(err, "loan", id)
	}
	return tag.RowsAffected() == 1, nil
}

const updateDueSQL = `UPDATE loans SET due_at = $2, updated_at = now() WHERE id = $1`

// UpdateDueDate moves the due date of a loan.
func (r *Repo) UpdateDueDate(ctx context.Context, id uuid.UUID, dueAt time.Time) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, updateDueSQL, id, dueAt)
	if err != nil {
		return postgres.MapError(err, "loan", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("loan %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

const deleteSQL = `
DELETE FROM loans WHERE id = $1
RETURNING id, book_id, user_id, loaned_at, due_at, returned_at, status, created_at, updated_at`

// Delete removes a loan and returns the deleted row.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, deleteSQL, id); err != nil {
		return nil, postgres.MapError(err, "loan", id)
	}
	l := rw.toDomain()
	return &l, nil
}
