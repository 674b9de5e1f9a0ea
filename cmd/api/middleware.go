package main

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
)

type sessionKey struct{}

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			if allow, retryAfter := app.rateLimiter.Allow(r.RemoteAddr); !allow {
				app.rateLimitExceededResponse(w, r, retryAfter.String())
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// requireRole resolves the bearer token into a session and checks the role
// against the allowed set. An empty set means any authenticated staff.
func (app *application) requireRole(roles ...domain.StaffRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				app.unauthorizedResponse(w, r, errors.New("missing authorization token"))
				return
			}

			session, err := app.authService.GetSession(r.Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrNoSession) {
					app.unauthorizedResponse(w, r, err)
					return
				}
				app.internalServerError(w, r, err)
				return
			}

			if len(roles) > 0 && !roleAllowed(session.Role, roles) {
				app.forbiddenResponse(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFromContext(ctx context.Context) *domain.Session {
	session, _ := ctx.Value(sessionKey{}).(*domain.Session)
	return session
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}

func roleAllowed(role domain.StaffRole, allowed []domain.StaffRole) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
