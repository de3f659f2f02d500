// Package mongodb implements the repository interfaces and the session store
// on MongoDB, the document store the restaurant dataset ships for.
//
// Documents carry a native ObjectID in _id; the rest of the application
// only ever sees its hex string form. The internal doc structs below are the
// bridge between the two.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sakif/restaurant-directory/internal/apperror"
)

const (
	restaurantsCollection = "restaurants"
	usersCollection       = "users"
	sessionsCollection    = "sessions"
)

// DB holds a connected client and the database all collections live in.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to uri, pings the server, and makes sure the indexes used
// for sorting and lookups exist.
func New(ctx context.Context, uri, database string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connecting: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo: pinging: %w", err)
	}

	db := &DB{client: client, db: client.Database(database)}
	if err := db.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return db, nil
}

// Close disconnects the client, waiting up to 10 seconds for in-flight
// operations.
func (db *DB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return db.client.Disconnect(ctx)
}

func (db *DB) ensureIndexes(ctx context.Context) error {
	_, err := db.db.Collection(restaurantsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "restaurant_id", Value: 1}}},
		{Keys: bson.D{{Key: "borough", Value: 1}, {Key: "restaurant_id", Value: 1}}},
		{Keys: bson.D{{Key: "address.coord", Value: "2dsphere"}}},
	})
	if err != nil {
		return fmt.Errorf("mongo: creating restaurant indexes: %w", err)
	}

	// Not unique: email uniqueness is enforced at registration.
	_, err = db.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("mongo: creating user indexes: %w", err)
	}
	return nil
}

// objectID parses a hex id. A malformed id can't match any document, so it
// is reported the same way as a missing one.
func objectID(resource, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperror.NotFound(resource, id)
	}
	return oid, nil
}

// notFound maps the driver's "no documents" error to apperror.ErrNotFound
// and wraps anything else with the resource it concerned.
func notFound(err error, resource, id string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperror.NotFound(resource, id)
	}
	return fmt.Errorf("mongo: getting %s %s: %w", resource, id, err)
}
