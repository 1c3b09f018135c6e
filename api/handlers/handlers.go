package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"newswire/dto"
	"newswire/services"
)

// PipelineRunner triggers the feed-update and failure-retry drivers
// on demand.
type PipelineRunner interface {
	UpdateFeeds(ctx context.Context) error
	RetryFailed(ctx context.Context) error
}

// ListFeedsHandler returns all registered feed sources.
func ListFeedsHandler(svc *services.FeedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		feeds, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, feeds)
	}
}

// CreateFeedHandler registers a new feed source. A duplicate source
// name is rejected with 409.
func CreateFeedHandler(svc *services.FeedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in dto.FeedDTO
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		out, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrConflict):
				c.JSON(http.StatusConflict, gin.H{"error": "feed source already exists"})
			case errors.Is(err, services.ErrInvalid):
				c.JSON(http.StatusBadRequest, gin.H{"error": "source and url are required"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

// UpdateFeedHandler replaces a feed identified by its source name.
func UpdateFeedHandler(svc *services.FeedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in dto.FeedDTO
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		out, err := svc.Update(c.Request.Context(), c.Param("source"), in)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "feed not found"})
			case errors.Is(err, services.ErrInvalid):
				c.JSON(http.StatusBadRequest, gin.H{"error": "source and url are required"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// DeleteFeedHandler removes a feed by its source name.
func DeleteFeedHandler(svc *services.FeedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("source")); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "feed not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "feed deleted"})
	}
}

// UpdateFeedsHandler triggers one pipeline pass over the active feeds.
func UpdateFeedsHandler(runner PipelineRunner) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := runner.UpdateFeeds(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "feeds updated successfully"})
	}
}

// RetryFailedHandler triggers one failure-retry pass.
func RetryFailedHandler(runner PipelineRunner) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := runner.RetryFailed(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "failed summaries retried"})
	}
}

// ListArticlesHandler returns the newest articles.
func ListArticlesHandler(svc *services.ArticleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		articles, err := svc.Recent(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, articles)
	}
}

// SearchArticlesHandler matches the query against title and summary.
// Queries shorter than three characters are rejected.
func SearchArticlesHandler(svc *services.ArticleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		articles, err := svc.Search(c.Request.Context(), c.Query("q"))
		if err != nil {
			if errors.Is(err, services.ErrInvalid) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "query must be at least 3 characters"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, articles)
	}
}
