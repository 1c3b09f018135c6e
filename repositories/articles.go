package repositories

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"newswire/models"
)

const searchLimit = 20

type ArticleRepository struct {
	col *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{col: db.Collection("articles")}
}

// ExistsByLink checks if an article exists by its link.
func (r *ArticleRepository) ExistsByLink(ctx context.Context, link string) (bool, error) {
	err := r.col.FindOne(ctx, bson.M{"link": link}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return err == nil, err
}

// Insert creates a new article document. A link collision on the
// unique index maps to ErrDuplicate.
func (r *ArticleRepository) Insert(ctx context.Context, a *models.Article) error {
	if a.InsertedAt.IsZero() {
		a.InsertedAt = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// ListRecent returns up to limit articles, newest published first.
func (r *ArticleRepository) ListRecent(ctx context.Context, limit int) ([]models.Article, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "published", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var articles []models.Article
	if err := cur.All(ctx, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// Search matches q case-insensitively against title and summary.
func (r *ArticleRepository) Search(ctx context.Context, q string) ([]models.Article, error) {
	regex := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"title": regex},
		{"summary": regex},
	}}
	cur, err := r.col.Find(ctx, filter, options.Find().SetLimit(searchLimit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var articles []models.Article
	if err := cur.All(ctx, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}
