package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/libris-backend/internal/domain"
	"github.com/heartmarshall/libris-backend/internal/service/catalog"
)

type bookService interface {
	ListBooks(ctx context.Context) ([]domain.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*domain.BookDetails, error)
	CreateBook(ctx context.Context, input catalog.CreateBookInput) (*domain.Book, error)
	UpdateBook(ctx context.Context, input catalog.UpdateBookInput) (*domain.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) (*domain.Book, error)
}

type requestValidator interface {
	Validate(s any) error
}

type timeSource interface {
	Now() time.Time
}

// BookHandler serves the catalog endpoints. Books are returned bare, not
// wrapped in an envelope.
type BookHandler struct {
	svc   bookService
	v     requestValidator
	clock timeSource
	errs  errorWriter
}

// NewBookHandler creates a BookHandler.
func NewBookHandler(svc bookService, v requestValidator, clock timeSource, logger *slog.Logger, dev bool) *BookHandler {
	log := logger.With("handler", "books")
	return &BookHandler{svc: svc, v: v, clock: clock, errs: errorWriter{log: log, dev: dev}}
}

type createBookRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Author      string  `json:"author" validate:"required,max=255"`
	ISBN        *string `json:"isbn" validate:"omitempty,max=17"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	TotalCopies *int    `json:"totalCopies" validate:"omitempty,min=1"`
}

type updateBookRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Author      *string `json:"author" validate:"omitempty,max=255"`
	ISBN        *string `json:"isbn" validate:"omitempty,max=17"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	TotalCopies *int    `json:"totalCopies" validate:"omitempty,min=1"`
}

// List handles GET /api/books.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.ListBooks(r.Context())
	if err != nil {
		h.errs.write(w, r, err, "Book")
		return
	}

	out := make([]bookResponse, 0, len(books))
	for i := range books {
		out = append(out, toBookResponse(&books[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/books/{id}.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		h.errs.write(w, r, err, "Book")
		return
	}

	details, err := h.svc.GetBook(r.Context(), id)
	if err != nil {
		h.errs.write(w, r, err, "Book")
		return
	}

	writeJSON(w, http.StatusOK, bookDetailsResponse{
		bookResponse: toBookResponse(&details.Book),
		ActiveLoans:  toLoanResponses(details.ActiveLoans, h.clock.Now()),
	})
}

// Create handles POST /api/books.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errs.write(w, r, err, "Book")
		return
	}
	if err := h.v.Validate(req); err != nil {
		h.errs.write(w, r, err, "Book")
		return
	}

	book, err := h.svc.CreateBook(r.Context(), catalog.CreateBookInput{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Category:    req.Category,
		TotalCopies: req.TotalCopies,
	})
	if err != nil {
		h.errs.write(w, r, err, "Book")
		return
	}

	writeJSON(w, http.StatusCreated, toBookResponse(book))
}

// Update handles PUT /api/books/{id}. Only the fields present are changed.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		h.errs.write(w, r, err, "Book")
		return
	}

	var req updateBookRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errs.write(w, r, err, "Book")
		return
	}
	if err := h.v.Validate(req); err != nil {
		h.errs.write(w, r, err, "Book")
		return
	}

	book, err := h.svc.UpdateBook(r.Context(), catalog.UpdateBookInput{
		BookID:      id,
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Category:    req.Category,
		TotalCopies: req.TotalCopies,
	})
	if err != nil {
		h.errs.write(w, r, err, "Book")
		return
	}

	writeJSON(w, http.StatusOK, toBookResponse(book))
}

// Delete handles DELETE /api/books/{id} and returns the removed book.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		h.errs.write(w, r, err, "Book")
		return
	}

	book, err := h.svc.DeleteBook(r.Context(), id)
	if err != nil {
		h.errs.write(w, r, err, "Book")
		return
	}

	writeJSON(w, http.StatusOK, toBookResponse(book))
}
