// Package book implements the catalog repository using PostgreSQL.
package book

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
	table   = "books"
	columns = "id, title, author, isbn, category, total_copies, available_copies, created_at, updated_at"

	// ISBNConstraint is the unique index on books.isbn.
	ISBNConstraint = "books_isbn_key"
)

// Repo provides book persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new book repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// row mirrors the books table.
type row struct {
	ID              uuid.UUID `db:"id"`
	Title           string    `db:"title"`
	Author          string    `db:"author"`
	ISBN            *string   `db:"isbn"`
	Category        *string   `db:"category"`
	TotalCopies     int       `db:"total_copies"`
	AvailableCopies int       `db:"available_copies"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Book {
	return domain.Book{
		ID:              r.ID,
		Title:           r.Title,
		Author:          r.Author,
		ISBN:            r.ISBN,
		Category:        r.Category,
		TotalCopies:     r.TotalCopies,
		AvailableCopies: r.AvailableCopies,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const listSQL = `SELECT ` + columns + ` FROM books ORDER BY title ASC, id ASC`

// List returns the whole catalog ordered by title.
func (r *Repo) List(ctx context.Context) ([]domain.Book, error) {
	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, listSQL); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	books := make([]domain.Book, len(rows))
	for i, rw := range rows {
		books[i] = rw.toDomain()
	}
	return books, nil
}

const getByIDSQL = `SELECT ` + columns + ` FROM books WHERE id = $1`

// GetByID returns a book by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	return r.get(ctx, getByIDSQL, id)
}

const getForUpdateSQL = getByIDSQL + ` FOR UPDATE`

// GetByIDForUpdate returns a book and locks its row until the surrounding
// transaction ends.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	return r.get(ctx, getForUpdateSQL, id)
}

func (r *Repo) get(ctx context.Context, query string, id uuid.UUID) (*domain.Book, error) {
	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, id); err != nil {
		return nil, postgres.MapError(err, "book", id)
	}
	b := rw.toDomain()
	return &b, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO books (id, title, author, isbn, category, total_copies, available_copies, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
RETURNING ` + columns

// Create inserts a book. A duplicate ISBN yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	id := b.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	createdAt := b.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var rw row
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, createSQL,
		id, b.Title, b.Author, b.ISBN, b.Category, b.TotalCopies, b.AvailableCopies, createdAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "book", id)
	}

	created := rw.toDomain()
	return &created, nil
}

// Update applies the non-nil fields of params.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.BookUpdateParams) (*domain.Book, error) {
	set := sq.Eq{}
	if params.Title != nil {
		set["title"] = *params.Title
	}
	if params.Author != nil {
		set["author"] = *params.Author
	}
	if params.ISBN != nil {
		set["isbn"] = nullIfEmpty(*params.ISBN)
	}
	if params.Category != nil {
		set["category"] = nullIfEmpty(*params.Category)
	}
	if params.TotalCopies != nil {
		set["total_copies"] = *params.TotalCopies
	}
	if params.AvailableCopies != nil {
		set["available_copies"] = *params.AvailableCopies
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	set["updated_at"] = sq.Expr("now()")

	query, args, err := postgres.Builder().
		Update(table).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update book: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "book", id)
	}

	updated := rw.toDomain()
	return &updated, nil
}

const deleteSQL = `DELETE FROM books WHERE id = $1 RETURNING ` + columns

// Delete removes a book and returns the deleted row.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, deleteSQL, id); err != nil {
		return nil, postgres.MapError(err, "book", id)
	}
	deleted := rw.toDomain()
	return &deleted, nil
}

// ---------------------------------------------------------------------------
// Availability counter
// ---------------------------------------------------------------------------

const takeCopySQL = `
UPDATE books
   SET available_copies = available_copies - 1, updated_at = now()
 WHERE id = $1 AND available_copies > 0`

// TakeCopy decrements availability by one if a copy is available.
// It reports false when no copy was left. Check and decrement are a single
// statement, so concurrent callers cannot both take the last copy.
func (r *Repo) TakeCopy(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, takeCopySQL, id)
	if err != nil {
		return false, postgres.MapError(err, "book", id)
	}
	return tag.RowsAffected() == 1, nil
}

const returnCopySQL = `
UPDATE books
   SET available_copies = available_copies + 1, updated_at = now()
 WHERE id = $1 AND available_copies < total_copies`

// ReturnCopy increments availability by one, never above total copies.
// It reports false when the counter was already full.
func (r *Repo) ReturnCopy(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, returnCopySQL, id)
	if err != nil {
		return false, postgres.MapError(err, "book", id)
	}
	return tag.RowsAffected() == 1, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
