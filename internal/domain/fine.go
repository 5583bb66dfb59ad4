package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultFinePerDay is the overdue charge per started day.
	DefaultFinePerDay = 20.0

	// DefaultFineReason is used for manual fines created without a reason.
	DefaultFineReason = "overdue"
)

// Fine is a monetary penalty tied to a loan. At most one fine exists per loan.
type Fine struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	LoanID    uuid.UUID
	Amount    float64
	Reason    string
	Status    FineStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	// Populated by reads that join members, loans and books.
	User *UserSummary
	Loan *FineLoan
}

// IsPaid reports whether the fine has been settled.
func (f *Fine) IsPaid() bool {
	return f.Status == FineStatusPaid
}

// FineLoan is the loan projection embedded in a fine.
type FineLoan struct {
	ID         uuid.UUID
	DueAt      time.Time
	ReturnedAt *time.Time
	Book       *BookSummary
}

// FineFilter narrows a fine listing.
type FineFilter struct {
	Status *FineStatus
	UserID *uuid.UUID
}

// OverdueCharge is the fine that an overdue loan should carry right now.
type OverdueCharge struct {
	LoanID      uuid.UUID
	UserID      uuid.UUID
	DaysOverdue int
	Amount      float64
	Reason      string
}

// NewOverdueCharge computes the charge for a loan at the given time.
// ok is false when the loan is not overdue.
func NewOverdueCharge(loan Loan, now time.Time, perDay float64) (charge OverdueCharge, ok bool) {
	days := loan.DaysOverdue(now)
	if days <= 0 {
		return OverdueCharge{}, false
	}
	return OverdueCharge{
		LoanID:      loan.ID,
		UserID:      loan.UserID,
		DaysOverdue: days,
		Amount:      float64(days) * perDay,
		Reason:      OverdueReason(days),
	}, true
}

// OverdueReason is the reason text of a sweep-generated fine.
func OverdueReason(days int) string {
	return fmt.Sprintf("Overdue return - %d day(s) late", days)
}

// ChargeOutcome tells what storing an overdue charge did to the loan's fine.
type ChargeOutcome int

const (
	// ChargeUnchanged means the fine was paid or already carried the amount.
	ChargeUnchanged ChargeOutcome = iota
	ChargeCreated
	ChargeUpdated
)

func (o ChargeOutcome) String() string {
	switch o {
	case ChargeCreated:
		return "created"
	case ChargeUpdated:
		return "updated"
	default:
		return "unchanged"
	}
}

// SweepResult reports what an overdue sweep changed.
type SweepResult struct {
	Created []Fine
	Updated []Fine
	Scanned int
	Failed  int
}
