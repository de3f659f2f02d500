package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/restaurant-directory/internal/apperror"
	"github.com/sakif/restaurant-directory/internal/model"
	"github.com/sakif/restaurant-directory/internal/pagination"
	"github.com/sakif/restaurant-directory/internal/repository"
	"github.com/sakif/restaurant-directory/internal/validate"
)

// MsgInvalidRestaurantID is shown when an id fails the well-formedness check.
const MsgInvalidRestaurantID = "Invalid Restaurant ID!"

// HomeLimit is how many restaurants the landing page lists.
const HomeLimit = 10

// RestaurantService handles business logic for restaurant records.
//
// Every operation that takes an id checks it with validate.ObjectID first;
// a malformed id never reaches the repository.
type RestaurantService struct {
	repo   repository.RestaurantRepository
	logger *slog.Logger
}

// NewRestaurantService creates a RestaurantService backed by repo.
func NewRestaurantService(repo repository.RestaurantRepository, logger *slog.Logger) *RestaurantService {
	return &RestaurantService{
		repo:   repo,
		logger: logger,
	}
}

// Find returns one page of restaurants ordered by restaurant_id.
//
// The query is re-validated here so callers that build a Query by hand get
// the same guarantee as ParseQuery: a bad page or perPage never reaches
// storage.
func (s *RestaurantService) Find(ctx context.Context, q pagination.Query) (*pagination.Page[model.Restaurant], error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	items, err := s.repo.Find(ctx, repository.FindOptions{
		Borough: q.Borough,
		Skip:    q.Skip(),
		Limit:   q.PerPage,
	})
	if err != nil {
		return nil, fmt.Errorf("service/restaurant: finding page %d: %w", q.Page, err)
	}

	s.logger.Debug("restaurants page served",
		slog.Int("page", q.Page),
		slog.Int("perPage", q.PerPage),
		slog.String("borough", q.Borough),
		slog.Int("count", len(items)),
	)
	return pagination.NewPage(q, items), nil
}

// Home returns the first HomeLimit restaurants.
func (s *RestaurantService) Home(ctx context.Context) ([]model.Restaurant, error) {
	items, err := s.repo.Find(ctx, repository.FindOptions{Limit: HomeLimit})
	if err != nil {
		return nil, fmt.Errorf("service/restaurant: listing home page: %w", err)
	}
	return items, nil
}

// Get returns the restaurant with the given id.
func (s *RestaurantService) Get(ctx context.Context, id string) (*model.Restaurant, error) {
	id, err := checkID(id)
	if err != nil {
		return nil, err
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/restaurant: getting %s: %w", id, err)
	}
	return r, nil
}

// Create stores a new restaurant. ID and timestamps are assigned by storage.
func (s *RestaurantService) Create(ctx context.Context, r *model.Restaurant) error {
	normalize(r)

	if err := s.repo.Create(ctx, r); err != nil {
		return fmt.Errorf("service/restaurant: creating %q: %w", r.Name, err)
	}

	s.logger.Info("restaurant created",
		slog.String("id", r.ID),
		slog.String("restaurantID", r.RestaurantID),
		slog.Int("grades", len(r.Grades)),
	)
	return nil
}

// Update replaces every field of the stored restaurant r.ID with r.
// The original CreatedAt is kept.
func (s *RestaurantService) Update(ctx context.Context, r *model.Restaurant) error {
	id, err := checkID(r.ID)
	if err != nil {
		return err
	}
	r.ID = id
	normalize(r)

	if err := s.repo.Update(ctx, r); err != nil {
		return fmt.Errorf("service/restaurant: updating %s: %w", id, err)
	}

	s.logger.Info("restaurant updated", slog.String("id", id))
	return nil
}

// Delete removes the restaurant with the given id.
// A well-formed id with no record returns an apperror.ErrNotFound.
func (s *RestaurantService) Delete(ctx context.Context, id string) error {
	id, err := checkID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service/restaurant: deleting %s: %w", id, err)
	}

	s.logger.Info("restaurant deleted", slog.String("id", id))
	return nil
}

func checkID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if !validate.ObjectID(id) {
		return "", apperror.ValidationFailed("id", MsgInvalidRestaurantID)
	}
	return id, nil
}

// normalize trims text fields and makes sure Grades is never nil, so both
// backends store an empty list rather than null.
func normalize(r *model.Restaurant) {
	r.Name = strings.TrimSpace(r.Name)
	r.Borough = strings.TrimSpace(r.Borough)
	r.Cuisine = strings.TrimSpace(r.Cuisine)
	r.RestaurantID = strings.TrimSpace(r.RestaurantID)
	if r.Grades == nil {
		r.Grades = []model.Grade{}
	}
}
