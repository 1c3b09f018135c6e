package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"newswire/api/handlers"
	"newswire/api/middleware"
	"newswire/db"
	"newswire/services"
)

// New wires the HTTP surface: feed CRUD, pipeline triggers and
// article queries.
func New(feedSvc *services.FeedService, articleSvc *services.ArticleService, runner handlers.PipelineRunner) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogging())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if err := db.Database().RunCommand(context.Background(), bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/feeds", handlers.ListFeedsHandler(feedSvc))
	r.POST("/feeds", handlers.CreateFeedHandler(feedSvc))
	r.PUT("/feeds/:source", handlers.UpdateFeedHandler(feedSvc))
	r.DELETE("/feeds/:source", handlers.DeleteFeedHandler(feedSvc))

	r.POST("/update-feeds", handlers.UpdateFeedsHandler(runner))
	r.POST("/retry-failed", handlers.RetryFailedHandler(runner))

	r.GET("/articles", handlers.ListArticlesHandler(articleSvc))
	r.GET("/search", handlers.SearchArticlesHandler(articleSvc))

	return r
}
