package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/libris-backend/internal/domain"
	"github.com/heartmarshall/libris-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, string, error)
}

// Auth resolves the bearer token into a member id and role. With enforce
// off, requests without a token pass through anonymously; a token that is
// present must still be valid.
func Auth(validator tokenValidator, enforce bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				if enforce {
					writeError(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
					return
				}
				next.ServeHTTP(w, r) // Anonymous
				return
			}

			userID, role, err := validator.ValidateAccessToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token")
				return
			}

			ctx := ctxutil.WithUserID(r.Context(), userID)
			ctx = ctxutil.WithRole(ctx, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLibrarian rejects callers without the librarian role. It is a
// no-op when enforce is off.
func RequireLibrarian(enforce bool) Middleware {
	return func(next http.Handler) http.Handler {
		if !enforce {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
				writeError(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
				return
			}
			if ctxutil.RoleFromCtx(r.Context()) != string(domain.UserRoleLibrarian) {
				writeError(w, http.StatusForbidden, "Forbidden", "Librarian access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
