package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"google.golang.org/genai"

	"newswire/api/router"
	"newswire/config"
	"newswire/db"
	"newswire/embedder"
	"newswire/feeder"
	"newswire/logger"
	"newswire/pipeline"
	"newswire/repositories"
	"newswire/scheduler"
	"newswire/services"
	"newswire/summarizer"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := db.Init(ctx); err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(shutdownCtx); err != nil {
			logger.Log.Errorf("failed to disconnect MongoDB: %v", err)
		}
	}()

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: os.Getenv("GEMINI_API_KEY"),
	})
	if err != nil {
		logger.Log.Errorf("failed to create Gemini client: %v", err)
		os.Exit(1)
	}

	feedRepo := repositories.NewFeedRepository(db.Database())
	articleRepo := repositories.NewArticleRepository(db.Database())
	failedRepo := repositories.NewFailedSummaryRepository(db.Database())

	sum := summarizer.NewSummarizer(
		summarizer.NewGeminiCompletion(genaiClient, cfg.LLM.ChatModel),
		summarizer.Config{
			Attempts:      cfg.Pipeline.SummaryRetryAttempts,
			Timeout:       cfg.Pipeline.SummaryTimeout(),
			RateLimitWait: cfg.Pipeline.SummaryRateLimitWait(),
			Backoff:       cfg.Pipeline.SummaryBackoff(),
		},
	)
	emb := embedder.New(embedder.NewGeminiEmbedding(genaiClient, cfg.LLM.EmbedModel))
	fetcher := feeder.NewFetcher(cfg.Pipeline.FetchTimeout())

	pipe := pipeline.New(feedRepo, articleRepo, failedRepo, fetcher, sum, emb, pipeline.Options{
		FeedBatchSize:  cfg.Pipeline.FeedBatchSize,
		RetryBatchSize: cfg.Pipeline.RetryBatchSize,
	})

	feedSvc := services.NewFeedService(feedRepo)
	articleSvc := services.NewArticleService(articleRepo)

	if cfg.Scheduler.Enabled {
		scheduler.New(cfg.Scheduler.Interval(), pipe.UpdateFeeds).Start(ctx)
	}

	r := router.New(feedSvc, articleSvc, pipe)
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: cors.Default().Handler(r),
	}

	go func() {
		logger.Log.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Errorf("server error: %v", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigChan:
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("server shutdown: %v", err)
	}
}
