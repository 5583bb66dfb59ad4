package domain

import (
	"time"

	"github.com/google/uuid"
)

// Book is a catalog record. AvailableCopies is always within
// [0, TotalCopies] and equals TotalCopies minus the active loans.
type Book struct {
	ID              uuid.UUID
	Title           string
	Author          string
	ISBN            *string
	Category        *string
	TotalCopies     int
	AvailableCopies int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasAvailableCopy reports whether at least one copy can be lent out.
func (b *Book) HasAvailableCopy() bool {
	return b.AvailableCopies > 0
}

// CopiesOnLoan returns how many copies are currently lent out.
func (b *Book) CopiesOnLoan() int {
	return b.TotalCopies - b.AvailableCopies
}

// BookUpdateParams holds the fields of a partial book update.
// A nil field is left unchanged.
type BookUpdateParams struct {
	Title           *string
	Author          *string
	ISBN            *string
	Category        *string
	TotalCopies     *int
	AvailableCopies *int
}

// BookSummary is the book projection embedded in loans and fines.
type BookSummary struct {
	ID     uuid.UUID
	Title  string
	Author string
	ISBN   *string
}

// BookDetails is a book together with its currently active loans.
type BookDetails struct {
	Book
	ActiveLoans []Loan
}
