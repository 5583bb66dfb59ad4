package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/libris-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Books
// ---------------------------------------------------------------------------

type bookResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            *string   `json:"isbn"`
	Category        *string   `json:"category"`
	TotalCopies     int       `json:"totalCopies"`
	AvailableCopies int       `json:"availableCopies"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type bookDetailsResponse struct {
	bookResponse
	ActiveLoans []loanResponse `json:"activeLoans"`
}

type bookSummaryResponse struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Author string    `json:"author"`
	ISBN   *string   `json:"isbn"`
}

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Category:        b.Category,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func toBookSummary(b *domain.BookSummary) *bookSummaryResponse {
	if b == nil {
		return nil
	}
	return &bookSummaryResponse{ID: b.ID, Title: b.Title, Author: b.Author, ISBN: b.ISBN}
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type userSummaryResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		Status:    u.Status.String(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserSummary(u *domain.UserSummary) *userSummaryResponse {
	if u == nil {
		return nil
	}
	return &userSummaryResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// ---------------------------------------------------------------------------
// Loans
// ---------------------------------------------------------------------------

type loanResponse struct {
	ID            uuid.UUID            `json:"id"`
	BookID        uuid.UUID            `json:"bookId"`
	UserID        uuid.UUID            `json:"userId"`
	LoanedAt      time.Time            `json:"loanedAt"`
	DueAt         time.Time            `json:"dueAt"`
	ReturnedAt    *time.Time           `json:"returnedAt"`
	Status        string               `json:"status"`
	DisplayStatus string               `json:"displayStatus"`
	IsOverdue     bool                 `json:"isOverdue"`
	DaysOverdue   int                  `json:"daysOverdue"`
	Book          *bookSummaryResponse `json:"book,omitempty"`
	User          *userSummaryResponse `json:"user,omitempty"`
}

func toLoanResponse(l *domain.Loan, now time.Time) loanResponse {
	return loanResponse{
		ID:            l.ID,
		BookID:        l.BookID,
		UserID:        l.UserID,
		LoanedAt:      l.LoanedAt,
		DueAt:         l.DueAt,
		ReturnedAt:    l.ReturnedAt,
		Status:        l.Status.String(),
		DisplayStatus: l.DisplayStatus(now),
		IsOverdue:     l.IsOverdue(now),
		DaysOverdue:   l.DaysOverdue(now),
		Book:          toBookSummary(l.Book),
		User:          toUserSummary(l.User),
	}
}

func toLoanResponses(loans []domain.Loan, now time.Time) []loanResponse {
	out := make([]loanResponse, 0, len(loans))
	for i := range loans {
		out = append(out, toLoanResponse(&loans[i], now))
	}
	return out
}

// ---------------------------------------------------------------------------
// Fines
// ---------------------------------------------------------------------------

type fineLoanResponse struct {
	ID         uuid.UUID            `json:"id"`
	DueAt      time.Time            `json:"dueAt"`
	ReturnedAt *time.Time           `json:"returnedAt"`
	Book       *bookSummaryResponse `json:"book,omitempty"`
}

type fineResponse struct {
	ID        uuid.UUID            `json:"id"`
	UserID    uuid.UUID            `json:"userId"`
	LoanID    uuid.UUID            `json:"loanId"`
	Amount    float64              `json:"amount"`
	Reason    string               `json:"reason"`
	Status    string               `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
	User      *userSummaryResponse `json:"user,omitempty"`
	Loan      *fineLoanResponse    `json:"loan,omitempty"`
}

func toFineResponse(f *domain.Fine) fineResponse {
	resp := fineResponse{
		ID:        f.ID,
		UserID:    f.UserID,
		LoanID:    f.LoanID,
		Amount:    f.Amount,
		Reason:    f.Reason,
		Status:    f.Status.String(),
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
		User:      toUserSummary(f.User),
	}
	if f.Loan != nil {
		resp.Loan = &fineLoanResponse{
			ID:         f.Loan.ID,
			DueAt:      f.Loan.DueAt,
			ReturnedAt: f.Loan.ReturnedAt,
			Book:       toBookSummary(f.Loan.Book),
		}
	}
	return resp
}

func toFineResponses(fines []domain.Fine) []fineResponse {
	out := make([]fineResponse, 0, len(fines))
	for i := range fines {
		out = append(out, toFineResponse(&fines[i]))
	}
	return out
}
