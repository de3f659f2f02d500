package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sakif/restaurant-directory/internal/apperror"
	"github.com/sakif/restaurant-directory/internal/model"
	"github.com/sakif/restaurant-directory/internal/repository"
)

var _ repository.RestaurantRepository = (*DB)(nil)

// dbRestaurant is the stored shape of a restaurant.
type dbRestaurant struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Borough      string             `bson:"borough"`
	Cuisine      string             `bson:"cuisine"`
	Address      model.Address      `bson:"address"`
	RestaurantID string             `bson:"restaurant_id"`
	Grades       []model.Grade      `bson:"grades"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toDBRestaurant(r *model.Restaurant, id primitive.ObjectID) dbRestaurant {
	grades := r.Grades
	if grades == nil {
		grades = []model.Grade{}
	}
	return dbRestaurant{
		ID:           id,
		Name:         r.Name,
		Borough:      r.Borough,
		Cuisine:      r.Cuisine,
		Address:      r.Address,
		RestaurantID: r.RestaurantID,
		Grades:       grades,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (d dbRestaurant) toModel() model.Restaurant {
	grades := d.Grades
	if grades == nil {
		grades = []model.Grade{}
	}
	return model.Restaurant{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Borough:      d.Borough,
		Cuisine:      d.Cuisine,
		Address:      d.Address,
		RestaurantID: d.RestaurantID,
		Grades:       grades,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (db *DB) restaurants() *mongo.Collection {
	return db.db.Collection(restaurantsCollection)
}

func (db *DB) Create(ctx context.Context, r *model.Restaurant) error {
	oid := primitive.NewObjectID()
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now

	if _, err := db.restaurants().InsertOne(ctx, toDBRestaurant(r, oid)); err != nil {
		return fmt.Errorf("mongo: creating restaurant: %w", err)
	}
	r.ID = oid.Hex()
	return nil
}

func (db *DB) GetByID(ctx context.Context, id string) (*model.Restaurant, error) {
	oid, err := objectID("restaurant", id)
	if err != nil {
		return nil, err
	}

	var doc dbRestaurant
	if err := db.restaurants().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err, "restaurant", id)
	}

	r := doc.toModel()
	return &r, nil
}

// Update replaces the whole document, keeping _id and created_at.
func (db *DB) Update(ctx context.Context, r *model.Restaurant) error {
	oid, err := objectID("restaurant", r.ID)
	if err != nil {
		return err
	}
	r.UpdatedAt = time.Now()

	doc := toDBRestaurant(r, oid)
	res, err := db.restaurants().UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"name":          doc.Name,
			"borough":       doc.Borough,
			"cuisine":       doc.Cuisine,
			"address":       doc.Address,
			"restaurant_id": doc.RestaurantID,
			"grades":        doc.Grades,
			"updated_at":    doc.UpdatedAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("mongo: updating restaurant %s: %w", r.ID, err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("restaurant", r.ID)
	}
	return nil
}

func (db *DB) Delete(ctx context.Context, id string) error {
	oid, err := objectID("restaurant", id)
	if err != nil {
		return err
	}

	res, err := db.restaurants().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("mongo: deleting restaurant %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound("restaurant", id)
	}
	return nil
}

// Find sorts by restaurant_id (then _id, for a stable order across pages)
// and applies skip/limit on the server.
func (db *DB) Find(ctx context.Context, opts repository.FindOptions) ([]model.Restaurant, error) {
	if opts.Limit <= 0 {
		return []model.Restaurant{}, nil
	}

	filter := bson.M{}
	if opts.Borough != "" {
		filter["borough"] = opts.Borough
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "restaurant_id", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(opts.Limit))
	if opts.Skip > 0 {
		findOpts.SetSkip(int64(opts.Skip))
	}

	cur, err := db.restaurants().Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo: finding restaurants: %w", err)
	}

	var docs []dbRestaurant
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: decoding restaurants: %w", err)
	}

	out := make([]model.Restaurant, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}
