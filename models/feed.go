package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feed represents a registered feed source.
// Collection: feeds
type Feed struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Source    string             `bson:"source" json:"source"`
	URL       string             `bson:"url" json:"url"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
