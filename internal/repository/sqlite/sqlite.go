// Package sqlite implements the repository interfaces and the session store
// on top of SQLite.
//
// It is the default backend: one file on disk, no server to run, and
// ":memory:" gives every test its own throwaway database.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which means you need a C compiler installed and
// cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of SQLite, so no C compiler needed.
//
// DOCUMENT SHAPE IN A RELATIONAL TABLE:
// A restaurant is a document (nested address, a list of grades). The scalar
// fields we filter or sort on (borough, restaurant_id) get real columns with
// indexes; the nested parts are stored as JSON text and decoded on read.
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements
// repository.RestaurantRepository, repository.UserRepository, and
// session.Store.
type DB struct {
	conn *sql.DB
}

// New opens the SQLite database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/restaurants.db" → file-based database (persistent)
//   - ":memory:"            → in-memory database (tests)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Each connection to ":memory:" is a separate, empty database. Pin the
	// pool to one connection so every query sees the migrated schema.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers proceed while a write is in progress.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the tables if they don't exist yet.
//
// users.email is indexed for the login lookup but deliberately NOT unique:
// uniqueness is checked by the registration flow, not by storage.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS restaurants (
			id            TEXT PRIMARY KEY,
			restaurant_id TEXT NOT NULL DEFAULT '',
			name          TEXT NOT NULL DEFAULT '',
			borough       TEXT NOT NULL DEFAULT '',
			cuisine       TEXT NOT NULL DEFAULT '',
			address       TEXT NOT NULL DEFAULT '{}',
			grades        TEXT NOT NULL DEFAULT '[]',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_restaurants_restaurant_id ON restaurants(restaurant_id);
		CREATE INDEX IF NOT EXISTS idx_restaurants_borough ON restaurants(borough, restaurant_id);
	`)
	if err != nil {
		return fmt.Errorf("creating restaurants table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id         TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name  TEXT NOT NULL,
			email      TEXT NOT NULL,
			password   TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating sessions table: %w", err)
	}

	return nil
}
