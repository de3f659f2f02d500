package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/restaurant-directory/internal/apperror"
)

// CookieName is the cookie carrying the session id.
const CookieName = "sid"

// Manager binds a Store to the session cookie.
//
// COOKIE FLOW:
//  1. Load reads the "sid" cookie and fetches the record. No cookie, or an
//     id the store doesn't know, yields a fresh unsaved Session.
//  2. Save persists the record and (re)sets the cookie.
//  3. Destroy deletes the record and expires the cookie.
//
// The cookie is HttpOnly (scripts can't read it) and SameSite=Lax.
type Manager struct {
	store  Store
	secure bool
}

// NewManager creates a Manager. secure marks the cookie HTTPS-only.
func NewManager(store Store, secure bool) *Manager {
	return &Manager{store: store, secure: secure}
}

// Load returns the caller's session. It never mutates the store, so the
// session gates can call it on rejected requests without side effects.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return newSession(), nil
	}

	s, err := m.store.Get(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return newSession(), nil
		}
		return nil, fmt.Errorf("session: loading %s: %w", cookie.Value, err)
	}
	return s, nil
}

// Save persists s and points the caller's cookie at it.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, s *Session) error {
	if err := m.store.Save(r.Context(), s); err != nil {
		return fmt.Errorf("session: saving %s: %w", s.ID, err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Renew drops the caller's current session record (if any) and returns a
// fresh Session with a new id. Called on login so a session id seen before
// authentication is never the one that ends up authenticated.
func (m *Manager) Renew(r *http.Request) (*Session, error) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		if err := m.store.Delete(r.Context(), cookie.Value); err != nil {
			return nil, fmt.Errorf("session: renewing %s: %w", cookie.Value, err)
		}
	}
	return newSession(), nil
}

// Destroy deletes the caller's session record and expires the cookie.
// The cookie is expired even when deleting the record fails, and a caller
// without a session still gets the expiring cookie.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		if err := m.store.Delete(r.Context(), cookie.Value); err != nil {
			return fmt.Errorf("session: destroying %s: %w", cookie.Value, err)
		}
	}
	return nil
}

func newSession() *Session {
	return &Session{
		ID:        xid.New().String(),
		CreatedAt: time.Now(),
	}
}
