package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"newswire/models"
)

type FailedSummaryRepository struct {
	col *mongo.Collection
}

func NewFailedSummaryRepository(db *mongo.Database) *FailedSummaryRepository {
	return &FailedSummaryRepository{col: db.Collection("failed_summaries")}
}

// Insert queues a failed summary for a later retry pass.
func (r *FailedSummaryRepository) Insert(ctx context.Context, fs *models.FailedSummary) error {
	if fs.Timestamp.IsZero() {
		fs.Timestamp = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, fs)
	return err
}

// List returns up to limit failed summaries in store order.
func (r *FailedSummaryRepository) List(ctx context.Context, limit int) ([]models.FailedSummary, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var failed []models.FailedSummary
	if err := cur.All(ctx, &failed); err != nil {
		return nil, err
	}
	return failed, nil
}

// Delete removes a failed summary by id after a successful retry.
func (r *FailedSummaryRepository) Delete(ctx context.Context, fs *models.FailedSummary) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": fs.ID})
	return err
}
