package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// Day is the unit overdue time is counted in.
	Day = 24 * time.Hour

	// DefaultLoanPeriod is how long a loan runs when no due date is given.
	DefaultLoanPeriod = 14 * Day
)

// Display statuses of a loan. "overdue" is derived, never stored.
const (
	LoanDisplayActive   = "active"
	LoanDisplayOverdue  = "overdue"
	LoanDisplayReturned = "returned"
)

// Loan records one borrowing of one copy of a book by a member.
type Loan struct {
	ID         uuid.UUID
	BookID     uuid.UUID
	UserID     uuid.UUID
	LoanedAt   time.Time
	DueAt      time.Time
	ReturnedAt *time.Time
	Status     LoanStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Populated by reads that join the catalog and membership tables.
	Book *BookSummary
	User *UserSummary
}

// IsActive reports whether the book is still out.
func (l *Loan) IsActive() bool {
	return l.Status == LoanStatusActive
}

// IsOverdue reports whether the loan is active and past its due date.
func (l *Loan) IsOverdue(now time.Time) bool {
	return l.IsActive() && l.DueAt.Before(now)
}

// DaysOverdue returns the number of started days since the due date,
// or 0 if the loan is not overdue.
func (l *Loan) DaysOverdue(now time.Time) int {
	if !l.IsOverdue(now) {
		return 0
	}
	return DaysLate(l.DueAt, now)
}

// DisplayStatus returns active, overdue or returned.
func (l *Loan) DisplayStatus(now time.Time) string {
	switch {
	case !l.IsActive():
		return LoanDisplayReturned
	case l.IsOverdue(now):
		return LoanDisplayOverdue
	default:
		return LoanDisplayActive
	}
}

// DaysLate counts started days between due and now, rounding up.
// Returns 0 when now is not after due.
func DaysLate(due, now time.Time) int {
	late := now.Sub(due)
	if late <= 0 {
		return 0
	}
	days := int(late / Day)
	if late%Day != 0 {
		days++
	}
	return days
}

// LoanFilter narrows a loan listing.
type LoanFilter struct {
	UserID *uuid.UUID
	BookID *uuid.UUID
	Status *LoanStatus
}

// LoanChange describes a return or renewal.
type LoanChange struct {
	DueAt      *time.Time
	Status     *LoanStatus
	ReturnedAt *time.Time
}
