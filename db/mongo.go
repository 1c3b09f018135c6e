package db

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"newswire/config"
	"newswire/logger"
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	db         *mongo.Database
)

// Init initializes the global Mongo client and database using config values.
func Init(ctx context.Context) error {
	var initErr error
	clientOnce.Do(func() {
		cfg := config.GetConfig()
		uri := cfg.Mongo.URI
		if uri == "" {
			uri = "mongodb://localhost:27017"
		}
		dbName := cfg.Mongo.Database
		if dbName == "" {
			dbName = "rss_news_db"
		}

		cl, err := mongo.NewClient(options.Client().ApplyURI(uri))
		if err != nil {
			initErr = err
			return
		}
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := cl.Connect(ctx); err != nil {
			initErr = err
			return
		}
		// Ping to verify connection
		if err := cl.Ping(ctx, readpref.Primary()); err != nil {
			initErr = err
			return
		}
		client = cl
		db = client.Database(dbName)

		if err := ensureIndexes(ctx, db); err != nil {
			initErr = err
			return
		}
		logger.Log.Info("MongoDB connected and indexes ensured")
	})
	return initErr
}

func Client() *mongo.Client     { return client }
func Database() *mongo.Database { return db }

// Close disconnects the global client.
func Close(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func ensureIndexes(ctx context.Context, d *mongo.Database) error {
	// feeds: unique index on source
	{
		mi := mongo.IndexModel{
			Keys:    bson.D{{Key: "source", Value: 1}},
			Options: options.Index().SetName("uniq_source").SetUnique(true),
		}
		if _, err := d.Collection("feeds").Indexes().CreateOne(ctx, mi); err != nil {
			return err
		}
	}

	// articles: unique link, published desc for recency queries.
	// The unique index closes the window where two entries with the
	// same link both pass the existence check.
	{
		if _, err := d.Collection("articles").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "link", Value: 1}},
			Options: options.Index().SetName("uniq_link").SetUnique(true),
		}); err != nil {
			return err
		}
		if _, err := d.Collection("articles").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "published", Value: -1}},
			Options: options.Index().SetName("idx_published_desc"),
		}); err != nil {
			return err
		}
	}

	// failed_summaries: index on link
	{
		if _, err := d.Collection("failed_summaries").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "link", Value: 1}},
			Options: options.Index().SetName("idx_link"),
		}); err != nil {
			return err
		}
	}
	return nil
}
