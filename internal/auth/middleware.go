package auth

import (
	"context"
	"net/http"

	"github.com/sakif/restaurant-directory/internal/session"
)

// contextKey is an unexported type used for context keys in this package.
// Only this package can create a key of type contextKey, so no other package
// can read or shadow the user id stored under it.
type contextKey string

const userIDKey contextKey = "userID"

// SessionLoader is the part of session.Manager the gates need.
type SessionLoader interface {
	Load(r *http.Request) (*session.Session, error)
}

// RequireSession is the session-flag gate: the request goes through only if
// the caller's session has IsAuth set. Anyone else is redirected to
// loginPath.
//
// MIDDLEWARE PATTERN IN GO:
//
//	func Middleware(next http.Handler) http.Handler {
//	    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	        // ... decide ...
//	        next.ServeHTTP(w, r)
//	    })
//	}
//
// A rejected request never reaches next, and the session is only read,
// never written, so rejection has no side effects.
func RequireSession(sessions SessionLoader, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := sessions.Load(r)
			if err != nil || !s.IsAuth {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireToken is the token gate: the caller's session must hold a token
// that TokenService.Validate accepts. On success the user id from the token
// is stored in the request context (read it with UserIDFromContext). A
// missing or invalid token redirects to loginPath.
func RequireToken(sessions SessionLoader, tokens *TokenService, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := sessions.Load(r)
			if err != nil || s.Token == "" {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			userID, err := tokens.Validate(s.Token)
			if err != nil {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the user id RequireToken attached.
// Returns ("", false) on routes that aren't behind the token gate.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}
