// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/carterperez-dev/surveys/internal/core"
)

type contextKey string

const IdentityKey contextKey = "identity"

const (
	LoginPath = "/login"
	PanelPath = "/"
)

// SessionVerifier resolves a session cookie value to the user behind it.
type SessionVerifier interface {
	Authenticate(ctx context.Context, token string) (*core.Identity, error)
}

// Notifier queues a message for the next rendered page.
type Notifier interface {
	Set(w http.ResponseWriter, kind, message string)
}

// Authenticator binds the session identity to the request context. Requests
// without a valid session are sent to the login page and the stale cookie is
// cleared.
func Authenticator(
	verifier SessionVerifier,
	cookieName string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cookieName)
			if err != nil || c.Value == "" {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			id, err := verifier.Authenticate(r.Context(), c.Value)
			if err != nil {
				if !isSessionError(err) {
					slog.Error("authenticate session",
						"error", err,
						"path", r.URL.Path,
					)
				}
				ClearCookie(w, cookieName)
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireRole turns an authorization denial into a warning plus a redirect
// to the panel.
func RequireRole(
	notifier Notifier,
	roles ...string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := core.Authorize(GetIdentity(r.Context()), roles...)
			if errors.Is(err, core.ErrUnauthorized) {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			if err != nil {
				notifier.Set(w, "warning", "You do not have permission to do that")
				http.Redirect(w, r, PanelPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(notifier Notifier) func(http.Handler) http.Handler {
	return RequireRole(notifier, core.RoleAdministrator)
}

func WithIdentity(ctx context.Context, id *core.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

func GetIdentity(ctx context.Context) *core.Identity {
	if id, ok := ctx.Value(IdentityKey).(*core.Identity); ok {
		return id
	}
	return nil
}

func GetUserID(ctx context.Context) int64 {
	if id := GetIdentity(ctx); id != nil {
		return id.UserID
	}
	return 0
}

func IsAdmin(ctx context.Context) bool {
	return GetIdentity(ctx).IsAdmin()
}

func ClearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func isSessionError(err error) bool {
	return errors.Is(err, core.ErrTokenExpired) ||
		errors.Is(err, core.ErrTokenInvalid) ||
		errors.Is(err, core.ErrTokenRevoked) ||
		errors.Is(err, core.ErrNotFound)
}
