package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sakif/restaurant-directory/internal/apperror"
	"github.com/sakif/restaurant-directory/internal/session"
)

// SessionDB stores session records as JSON rows in the sessions table.
type SessionDB struct {
	conn *sql.DB
}

var _ session.Store = (*SessionDB)(nil)

// Sessions returns the session store sharing this database's pool.
func (db *DB) Sessions() *SessionDB {
	return &SessionDB{conn: db.conn}
}

func (s *SessionDB) Get(ctx context.Context, id string) (*session.Session, error) {
	var data string
	err := s.conn.QueryRowContext(ctx,
		`SELECT data FROM sessions WHERE id = ?`, id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("session", id)
		}
		return nil, fmt.Errorf("sqlite: getting session %s: %w", id, err)
	}

	var sess session.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("sqlite: decoding session %s: %w", id, err)
	}
	return &sess, nil
}

// Save inserts or replaces the session row.
func (s *SessionDB) Save(ctx context.Context, sess *session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("sqlite: encoding session %s: %w", sess.ID, err)
	}

	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO sessions (id, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		sess.ID, string(data), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: saving session %s: %w", sess.ID, err)
	}
	return nil
}

func (s *SessionDB) Delete(ctx context.Context, id string) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting session %s: %w", id, err)
	}
	return nil
}
