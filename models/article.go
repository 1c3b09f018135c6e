package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article is a summarized feed entry. Articles are immutable once
// inserted; link is unique across the collection.
// Collection: articles
type Article struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Source     string             `bson:"source" json:"source"`
	Title      string             `bson:"title" json:"title"`
	Link       string             `bson:"link" json:"link"`
	Published  time.Time          `bson:"published" json:"published"`
	Summary    string             `bson:"summary" json:"summary"`
	Embedding  []float32          `bson:"embedding" json:"embedding"`
	Content    string             `bson:"content" json:"content"`
	InsertedAt time.Time          `bson:"inserted_at" json:"inserted_at"`
}
