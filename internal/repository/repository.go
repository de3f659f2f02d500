// Package repository declares the storage interfaces the services depend on.
// Implementations live in the sqlite and mongo subpackages; services only
// ever see these interfaces.
package repository

import (
	"context"

	"github.com/sakif/restaurant-directory/internal/model"
)

// FindOptions selects one window of restaurants, ordered by restaurant_id.
// An empty Borough means no filter.
type FindOptions struct {
	Borough string
	Skip    int
	Limit   int
}

// RestaurantRepository stores restaurants keyed by their opaque id.
//
// GetByID, Update, and Delete return an error wrapping apperror.ErrNotFound
// when no restaurant has the id. Update replaces the whole document.
type RestaurantRepository interface {
	Create(ctx context.Context, r *model.Restaurant) error
	GetByID(ctx context.Context, id string) (*model.Restaurant, error)
	Update(ctx context.Context, r *model.Restaurant) error
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, opts FindOptions) ([]model.Restaurant, error)
}

// UserRepository stores user accounts.
//
// GetByEmail returns apperror.ErrNotFound when no user has the email. Email
// uniqueness is the caller's responsibility; Create never rejects a
// duplicate email.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}
