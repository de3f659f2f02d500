// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data, similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Restaurant is one record of the restaurant dataset.
//
// ID is the store-generated primary key (a MongoDB ObjectID in hex form,
// regardless of backend). RestaurantID is the dataset's own external
// identifier; it is the sort key for listings but is NOT unique or primary.
type Restaurant struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"          bson:"name"`
	Borough      string    `json:"borough"       bson:"borough"`
	Cuisine      string    `json:"cuisine"       bson:"cuisine"`
	Address      Address   `json:"address"       bson:"address"`
	RestaurantID string    `json:"restaurant_id" bson:"restaurant_id"`
	Grades       []Grade   `json:"grades"        bson:"grades"`
	CreatedAt    time.Time `json:"createdAt"     bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt"     bson:"updated_at"`
}

// Address is the nested postal + geo location of a restaurant.
//
// Coord is [longitude, latitude] (GeoJSON order). It is nil when the
// submitted coordinates did not parse to an in-range position, never a
// pair of NaNs.
type Address struct {
	Building string    `json:"building" bson:"building"`
	Street   string    `json:"street"   bson:"street"`
	Zipcode  string    `json:"zipcode"  bson:"zipcode"`
	Coord    []float64 `json:"coord"    bson:"coord,omitempty"`
}

// Longitude returns the first coordinate, or 0 when none is stored.
func (a Address) Longitude() float64 {
	if len(a.Coord) != 2 {
		return 0
	}
	return a.Coord[0]
}

// Latitude returns the second coordinate, or 0 when none is stored.
func (a Address) Latitude() float64 {
	if len(a.Coord) != 2 {
		return 0
	}
	return a.Coord[1]
}

// Grade is one inspection result. Only fully parsed grades are ever stored.
type Grade struct {
	Date  time.Time `json:"date"  bson:"date"`
	Grade string    `json:"grade" bson:"grade"`
	Score int       `json:"score" bson:"score"`
}
