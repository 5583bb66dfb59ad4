package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/libris-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates an active borrower.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	return SeedUserWith(t, pool, domain.UserRoleBorrower, domain.UserStatusActive)
}

// SeedUserWith creates a member with the given role and status.
func SeedUserWith(t *testing.T, pool *pgxpool.Pool, role domain.UserRole, status domain.UserStatus) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:        uuid.New(),
		Name:      "Reader " + suffix,
		Email:     "reader-" + suffix + "@example.com",
		Role:      role,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, name, email, role, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Name, user.Email, string(user.Role), string(user.Status), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}

	return user
}

// SeedBook creates a book with the given number of copies, all available.
func SeedBook(t *testing.T, pool *pgxpool.Pool, copies int) domain.Book {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	isbn := "978-" + suffix
	category := "Fiction"
	book := domain.Book{
		ID:              uuid.New(),
		Title:           "Book " + suffix,
		Author:          "Author " + suffix,
		ISBN:            &isbn,
		Category:        &category,
		TotalCopies:     copies,
		AvailableCopies: copies,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO books (id, title, author, isbn, category, total_copies, available_copies, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		book.ID, book.Title, book.Author, book.ISBN, book.Category,
		book.TotalCopies, book.AvailableCopies, book.CreatedAt, book.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBook insert: %v", err)
	}

	return book
}

// SeedLoan creates an active loan due at dueAt and takes one copy of the
// book out of availability, as a real borrow would.
func SeedLoan(t *testing.T, pool *pgxpool.Pool, bookID, userID uuid.UUID, dueAt time.Time) domain.Loan {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	loan := domain.Loan{
		ID:        uuid.New(),
		BookID:    bookID,
		UserID:    userID,
		LoanedAt:  now,
		DueAt:     dueAt.UTC().Truncate(time.Microsecond),
		Status:    domain.LoanStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO loans (id, book_id, user_id, loaned_at, due_at, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		loan.ID, loan.BookID, loan.UserID, loan.LoanedAt, loan.DueAt, string(loan.Status), loan.CreatedAt, loan.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLoan insert: %v", err)
	}

	_, err = pool.Exec(ctx,
		`UPDATE books SET available_copies = available_copies - 1 WHERE id = $1`, bookID)
	if err != nil {
		t.Fatalf("testhelper: SeedLoan decrement: %v", err)
	}

	return loan
}

// SeedFine creates a fine for a loan.
func SeedFine(t *testing.T, pool *pgxpool.Pool, loan domain.Loan, amount float64, status domain.FineStatus) domain.Fine {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	fine := domain.Fine{
		ID:        uuid.New(),
		UserID:    loan.UserID,
		LoanID:    loan.ID,
		Amount:    amount,
		Reason:    domain.DefaultFineReason,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO fines (id, user_id, loan_id, amount, reason, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		fine.ID, fine.UserID, fine.LoanID, fine.Amount, fine.Reason, string(fine.Status), fine.CreatedAt, fine.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedFine insert: %v", err)
	}

	return fine
}

// AvailableCopies reads the current availability of a book.
func AvailableCopies(t *testing.T, pool *pgxpool.Pool, bookID uuid.UUID) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT available_copies FROM books WHERE id = $1`, bookID).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: AvailableCopies: %v", err)
	}
	return n
}
