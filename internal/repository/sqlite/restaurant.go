package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sakif/restaurant-directory/internal/apperror"
	"github.com/sakif/restaurant-directory/internal/model"
	"github.com/sakif/restaurant-directory/internal/repository"
)

var _ repository.RestaurantRepository = (*DB)(nil)

const restaurantColumns = `id, restaurant_id, name, borough, cuisine, address, grades, created_at, updated_at`

// Create inserts a new restaurant and fills in its ID and timestamps.
//
// IDs are MongoDB ObjectIDs even here, so an id handed out by either backend
// passes the same well-formedness check and URLs look the same.
func (db *DB) Create(ctx context.Context, r *model.Restaurant) error {
	r.ID = primitive.NewObjectID().Hex()
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now

	address, grades, err := encodeNested(r)
	if err != nil {
		return fmt.Errorf("sqlite: creating restaurant: %w", err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO restaurants (`+restaurantColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.RestaurantID,
		r.Name,
		r.Borough,
		r.Cuisine,
		address,
		grades,
		r.CreatedAt,
		r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating restaurant: %w", err)
	}

	return nil
}

// GetByID retrieves a single restaurant by its ID.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Restaurant, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = ?`,
		id,
	)

	r, err := scanRestaurant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("restaurant", id)
		}
		return nil, fmt.Errorf("sqlite: getting restaurant %s: %w", id, err)
	}

	return r, nil
}

// Update replaces every field of the restaurant with the given ID.
// CreatedAt is kept from the stored row.
func (db *DB) Update(ctx context.Context, r *model.Restaurant) error {
	r.UpdatedAt = time.Now()

	address, grades, err := encodeNested(r)
	if err != nil {
		return fmt.Errorf("sqlite: updating restaurant %s: %w", r.ID, err)
	}

	result, err := db.conn.ExecContext(ctx,
		`UPDATE restaurants
		 SET restaurant_id = ?, name = ?, borough = ?, cuisine = ?,
		     address = ?, grades = ?, updated_at = ?
		 WHERE id = ?`,
		r.RestaurantID,
		r.Name,
		r.Borough,
		r.Cuisine,
		address,
		grades,
		r.UpdatedAt,
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating restaurant %s: %w", r.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("restaurant", r.ID)
	}

	return nil
}

// Delete removes a restaurant by its ID.
func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM restaurants WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting restaurant %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("restaurant", id)
	}

	return nil
}

// Find returns one window of restaurants ordered by restaurant_id, with an
// optional borough filter.
//
// Ties on restaurant_id are broken by id so a window is stable across pages.
// A Limit <= 0 returns no rows rather than the whole table.
func (db *DB) Find(ctx context.Context, opts repository.FindOptions) ([]model.Restaurant, error) {
	if opts.Limit <= 0 {
		return []model.Restaurant{}, nil
	}
	skip := opts.Skip
	if skip < 0 {
		skip = 0
	}

	query := `SELECT ` + restaurantColumns + ` FROM restaurants`
	args := make([]any, 0, 3)
	if opts.Borough != "" {
		query += ` WHERE borough = ?`
		args = append(args, opts.Borough)
	}
	query += ` ORDER BY restaurant_id ASC, id ASC LIMIT ? OFFSET ?`
	args = append(args, opts.Limit, skip)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: finding restaurants: %w", err)
	}
	defer rows.Close()

	restaurants := []model.Restaurant{}
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning restaurant row: %w", err)
		}
		restaurants = append(restaurants, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating restaurants: %w", err)
	}

	return restaurants, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRestaurant(row rowScanner) (*model.Restaurant, error) {
	var (
		r       model.Restaurant
		address string
		grades  string
	)
	if err := row.Scan(
		&r.ID,
		&r.RestaurantID,
		&r.Name,
		&r.Borough,
		&r.Cuisine,
		&address,
		&grades,
		&r.CreatedAt,
		&r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(address), &r.Address); err != nil {
		return nil, fmt.Errorf("decoding address of %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(grades), &r.Grades); err != nil {
		return nil, fmt.Errorf("decoding grades of %s: %w", r.ID, err)
	}
	if r.Grades == nil {
		r.Grades = []model.Grade{}
	}

	return &r, nil
}

func encodeNested(r *model.Restaurant) (address, grades string, err error) {
	a, err := json.Marshal(r.Address)
	if err != nil {
		return "", "", fmt.Errorf("encoding address: %w", err)
	}
	gs := r.Grades
	if gs == nil {
		gs = []model.Grade{}
	}
	g, err := json.Marshal(gs)
	if err != nil {
		return "", "", fmt.Errorf("encoding grades: %w", err)
	}
	return string(a), string(g), nil
}
