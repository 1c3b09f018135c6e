package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FailedSummary queues an entry whose summarization exhausted its
// retries. The retry driver deletes the record once the entry migrates
// to the articles collection, so a link lives in at most one of the
// two collections.
// Collection: failed_summaries
type FailedSummary struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Source    string             `bson:"source" json:"source"`
	Title     string             `bson:"title" json:"title"`
	Link      string             `bson:"link" json:"link"`
	Content   string             `bson:"content" json:"content"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
