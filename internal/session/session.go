// Package session keeps per-caller login state on the server side.
//
// The browser only ever holds an opaque session id in the "sid" cookie. The
// record it points to (auth flag, user snapshot, signed token) lives in a
// Store, which is injected: an in-memory map in tests and single-process
// deployments, the SQLite or MongoDB backend otherwise.
//
// Sessions are keyed per caller and never shared, so the only concurrency
// concern is the Store's own map/connection safety.
package session

import (
	"context"
	"time"

	"github.com/sakif/restaurant-directory/internal/model"
)

// Session is the server-side record behind one session cookie.
type Session struct {
	ID        string      `json:"id"`
	IsAuth    bool        `json:"isAuth"`
	User      *model.User `json:"user,omitempty"`
	Token     string      `json:"token,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Store persists sessions by id.
//
// Get returns an error wrapping apperror.ErrNotFound for an unknown id.
// Save inserts or replaces. Delete of an unknown id is not an error.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
