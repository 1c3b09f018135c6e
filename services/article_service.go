package services

import (
	"context"
	"unicode/utf8"

	"newswire/dto"
	"newswire/models"
)

// MinSearchQueryLen is the minimum accepted /search query length.
const MinSearchQueryLen = 3

const defaultArticleLimit = 10

// ArticleStore is the slice of the article repository the service needs.
type ArticleStore interface {
	ListRecent(ctx context.Context, limit int) ([]models.Article, error)
	Search(ctx context.Context, q string) ([]models.Article, error)
}

// ArticleService encapsulates article queries and DTO mapping.
type ArticleService struct {
	store ArticleStore
}

func NewArticleService(store ArticleStore) *ArticleService {
	return &ArticleService{store: store}
}

// Recent returns the newest articles by publish time.
func (s *ArticleService) Recent(ctx context.Context, limit int) ([]dto.ArticleDTO, error) {
	if limit <= 0 {
		limit = defaultArticleLimit
	}
	articles, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toDTOs(articles), nil
}

// Search matches q case-insensitively against title and summary.
// Queries shorter than MinSearchQueryLen are rejected.
func (s *ArticleService) Search(ctx context.Context, q string) ([]dto.ArticleDTO, error) {
	if utf8.RuneCountInString(q) < MinSearchQueryLen {
		return nil, ErrInvalid
	}
	articles, err := s.store.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return toDTOs(articles), nil
}

func toDTOs(articles []models.Article) []dto.ArticleDTO {
	out := make([]dto.ArticleDTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, dto.NewArticleDTO(a))
	}
	return out
}
