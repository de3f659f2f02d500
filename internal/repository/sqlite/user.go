package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sakif/restaurant-directory/internal/apperror"
	"github.com/sakif/restaurant-directory/internal/model"
	"github.com/sakif/restaurant-directory/internal/repository"
)

// UserDB exposes the users table. It is a separate type from DB because
// both repositories want methods named Create and GetByID.
type UserDB struct {
	conn *sql.DB
}

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

// Users returns the user repository sharing this database's pool.
func (db *DB) Users() *UserDB {
	return &UserDB{conn: db.conn}
}

// Create inserts a new user and fills in ID and CreatedAt.
// u.Password must already be a hash.
func (u *UserDB) Create(ctx context.Context, user *model.User) error {
	user.ID = primitive.NewObjectID().Hex()
	user.CreatedAt = time.Now()

	_, err := u.conn.ExecContext(ctx,
		`INSERT INTO users (id, first_name, last_name, email, password, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Password,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user (email=%s): %w", user.Email, err)
	}

	return nil
}

// GetByEmail returns the earliest-registered user with the given email.
func (u *UserDB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := u.getOne(ctx,
		`SELECT id, first_name, last_name, email, password, created_at
		 FROM users WHERE email = ? ORDER BY created_at ASC LIMIT 1`,
		email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", email)
		}
		return nil, fmt.Errorf("sqlite: getting user by email %s: %w", email, err)
	}
	return user, nil
}

// GetByID retrieves a user by their ID.
func (u *UserDB) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := u.getOne(ctx,
		`SELECT id, first_name, last_name, email, password, created_at
		 FROM users WHERE id = ?`,
		id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}
	return user, nil
}

func (u *UserDB) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var user model.User
	err := u.conn.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Password,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
