package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/libris-backend/internal/config"
	"github.com/heartmarshall/libris-backend/internal/transport/middleware"
)

// tokenValidator turns a bearer token into a member id and role.
type tokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, string, error)
}

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Books  *BookHandler
	Users  *UserHandler
	Loans  *LoanHandler
	Fines  *FineHandler
	Health *HealthHandler

	Tokens      tokenValidator
	RateLimiter *middleware.RateLimiter // nil disables rate limiting
	Auth        config.AuthConfig
	CORS        config.CORSConfig
	Logger      *slog.Logger
}

// NewRouter builds the chi router with the full middleware chain.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.CORS(d.CORS),
	))
	if d.RateLimiter != nil {
		r.Use(d.RateLimiter.Limit())
	}

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)

	librarian := middleware.RequireLibrarian(d.Auth.Enforce)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(d.Tokens, d.Auth.Enforce))

		r.Route("/books", func(r chi.Router) {
			r.Get("/", d.Books.List)
			r.Get("/{id}", d.Books.Get)
			r.With(librarian).Post("/", d.Books.Create)
			r.With(librarian).Put("/{id}", d.Books.Update)
			r.With(librarian).Delete("/{id}", d.Books.Delete)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(librarian).Get("/", d.Users.List)
			r.Post("/", d.Users.Create)
			r.Get("/{id}", d.Users.Get)
			r.With(librarian).Patch("/{id}/status", d.Users.UpdateStatus)
		})

		r.Route("/loans", func(r chi.Router) {
			r.With(librarian).Get("/", d.Loans.List)
			r.Post("/", d.Loans.Borrow)
			r.Get("/user/{userId}", d.Loans.ListByUser)
			r.Get("/{id}", d.Loans.Get)
			r.Put("/{id}", d.Loans.Update)
			r.With(librarian).Delete("/{id}", d.Loans.Delete)
		})

		r.Route("/fines", func(r chi.Router) {
			r.Get("/", d.Fines.List)
			r.With(librarian).Post("/", d.Fines.Create)
			r.With(librarian).Post("/auto-generate", d.Fines.AutoGenerate)
			r.Get("/user/{userId}", d.Fines.ListByUser)
			r.Get("/{id}", d.Fines.Get)
			r.With(librarian).Patch("/{id}/status", d.Fines.UpdateStatus)
			r.With(librarian).Delete("/{id}", d.Fines.Delete)
		})
	})

	return r
}
