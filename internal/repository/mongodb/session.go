package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sakif/restaurant-directory/internal/model"
	"github.com/sakif/restaurant-directory/internal/session"
)

// SessionDB keeps session records in the sessions collection, keyed by the
// session id itself.
type SessionDB struct {
	coll *mongo.Collection
}

var _ session.Store = (*SessionDB)(nil)

// Sessions returns the session store on this database.
func (db *DB) Sessions() *SessionDB {
	return &SessionDB{coll: db.db.Collection(sessionsCollection)}
}

// dbSession mirrors session.Session. The user snapshot leaves out the
// password hash.
type dbSession struct {
	ID        string       `bson:"_id"`
	IsAuth    bool         `bson:"isAuth"`
	User      *sessionUser `bson:"user,omitempty"`
	Token     string       `bson:"token,omitempty"`
	CreatedAt time.Time    `bson:"createdAt"`
	UpdatedAt time.Time    `bson:"updatedAt"`
}

type sessionUser struct {
	ID        string    `bson:"id"`
	FirstName string    `bson:"firstName"`
	LastName  string    `bson:"lastName"`
	Email     string    `bson:"email"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (s *SessionDB) Get(ctx context.Context, id string) (*session.Session, error) {
	var doc dbSession
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, notFound(err, "session", id)
	}

	out := &session.Session{
		ID:        doc.ID,
		IsAuth:    doc.IsAuth,
		Token:     doc.Token,
		CreatedAt: doc.CreatedAt,
	}
	if doc.User != nil {
		out.User = &model.User{
			ID:        doc.User.ID,
			FirstName: doc.User.FirstName,
			LastName:  doc.User.LastName,
			Email:     doc.User.Email,
			CreatedAt: doc.User.CreatedAt,
		}
	}
	return out, nil
}

// Save upserts the session document.
func (s *SessionDB) Save(ctx context.Context, sess *session.Session) error {
	doc := dbSession{
		ID:        sess.ID,
		IsAuth:    sess.IsAuth,
		Token:     sess.Token,
		CreatedAt: sess.CreatedAt,
		UpdatedAt: time.Now(),
	}
	if sess.User != nil {
		doc.User = &sessionUser{
			ID:        sess.User.ID,
			FirstName: sess.User.FirstName,
			LastName:  sess.User.LastName,
			Email:     sess.User.Email,
			CreatedAt: sess.User.CreatedAt,
		}
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": sess.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo: saving session %s: %w", sess.ID, err)
	}
	return nil
}

func (s *SessionDB) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("mongo: deleting session %s: %w", id, err)
	}
	return nil
}
