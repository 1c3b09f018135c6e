package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"newswire/models"
)

type FeedRepository struct {
	col *mongo.Collection
}

func NewFeedRepository(db *mongo.Database) *FeedRepository {
	return &FeedRepository{col: db.Collection("feeds")}
}

// List returns up to limit feeds, optionally only active ones.
func (r *FeedRepository) List(ctx context.Context, activeOnly bool, limit int) ([]models.Feed, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	opts := options.Find().SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var feeds []models.Feed
	if err := cur.All(ctx, &feeds); err != nil {
		return nil, err
	}
	return feeds, nil
}

// FindBySource returns a feed by its source name.
func (r *FeedRepository) FindBySource(ctx context.Context, source string) (*models.Feed, error) {
	var f models.Feed
	if err := r.col.FindOne(ctx, bson.M{"source": source}).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

// Insert creates a new feed. A source name collision maps to ErrDuplicate.
func (r *FeedRepository) Insert(ctx context.Context, f *models.Feed) error {
	now := time.Now().UTC()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	f.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, f); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// UpdateBySource replaces the mutable fields of a feed identified by
// its source name.
func (r *FeedRepository) UpdateBySource(ctx context.Context, source string, f *models.Feed) error {
	update := bson.M{
		"$set": bson.M{
			"source":     f.Source,
			"url":        f.URL,
			"active":     f.Active,
			"updated_at": time.Now().UTC(),
		},
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"source": source}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBySource removes a feed by its source name.
func (r *FeedRepository) DeleteBySource(ctx context.Context, source string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"source": source})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
