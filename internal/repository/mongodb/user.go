package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sakif/restaurant-directory/internal/model"
	"github.com/sakif/restaurant-directory/internal/repository"
)

// UserDB is the users collection. Separate from DB because both
// repositories want methods named Create and GetByID.
type UserDB struct {
	coll *mongo.Collection
}

var _ repository.UserRepository = (*UserDB)(nil)

// Users returns the user repository on this database.
func (db *DB) Users() *UserDB {
	return &UserDB{coll: db.db.Collection(usersCollection)}
}

type dbUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"firstName"`
	LastName  string             `bson:"lastName"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d dbUser) toModel() *model.User {
	return &model.User{
		ID:        d.ID.Hex(),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Password:  d.Password,
		CreatedAt: d.CreatedAt,
	}
}

func (u *UserDB) Create(ctx context.Context, user *model.User) error {
	oid := primitive.NewObjectID()
	user.CreatedAt = time.Now()

	_, err := u.coll.InsertOne(ctx, dbUser{
		ID:        oid,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Password:  user.Password,
		CreatedAt: user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("mongo: inserting user (email=%s): %w", user.Email, err)
	}
	user.ID = oid.Hex()
	return nil
}

// GetByEmail returns the earliest-registered user with the given email.
func (u *UserDB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var doc dbUser
	err := u.coll.FindOne(ctx,
		bson.M{"email": email},
		options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}}),
	).Decode(&doc)
	if err != nil {
		return nil, notFound(err, "user", email)
	}
	return doc.toModel(), nil
}

func (u *UserDB) GetByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := objectID("user", id)
	if err != nil {
		return nil, err
	}

	var doc dbUser
	if err := u.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err, "user", id)
	}
	return doc.toModel(), nil
}
