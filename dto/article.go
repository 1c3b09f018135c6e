package dto

import (
	"time"

	"newswire/models"
)

// ArticleDTO is the API representation of a stored article. The
// embedding vector is internal and not exposed.
type ArticleDTO struct {
	Source    string    `json:"source"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Published time.Time `json:"published"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
}

func NewArticleDTO(a models.Article) ArticleDTO {
	return ArticleDTO{
		Source:    a.Source,
		Title:     a.Title,
		Link:      a.Link,
		Published: a.Published,
		Summary:   a.Summary,
		Content:   a.Content,
	}
}
