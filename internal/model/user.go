package model

import "time"

// User represents a registered user account.
//
// Email is unique by an application-level check at registration, not by a
// storage constraint. Password only ever holds the bcrypt hash; the json:"-"
// tag keeps it out of every JSON encoding, including session snapshots.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName" bson:"firstName"`
	LastName  string    `json:"lastName"  bson:"lastName"`
	Email     string    `json:"email"     bson:"email"`
	Password  string    `json:"-"         bson:"password"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
