package services

import (
	"context"
	"errors"
	"strings"

	"newswire/dto"
	"newswire/models"
	"newswire/repositories"
)

// Service-level errors mapped to HTTP status by the handlers.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
	ErrInvalid  = errors.New("invalid input")
)

// FeedStore is the slice of the feed repository the service needs.
type FeedStore interface {
	List(ctx context.Context, activeOnly bool, limit int) ([]models.Feed, error)
	Insert(ctx context.Context, f *models.Feed) error
	UpdateBySource(ctx context.Context, source string, f *models.Feed) error
	DeleteBySource(ctx context.Context, source string) error
}

// FeedService encapsulates feed CRUD and DTO mapping.
type FeedService struct {
	store FeedStore
}

func NewFeedService(store FeedStore) *FeedService {
	return &FeedService{store: store}
}

func (s *FeedService) List(ctx context.Context) ([]dto.FeedDTO, error) {
	feeds, err := s.store.List(ctx, false, 100)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FeedDTO, 0, len(feeds))
	for _, f := range feeds {
		out = append(out, dto.NewFeedDTO(f))
	}
	return out, nil
}

// Create registers a new feed source. A duplicate source name is a
// conflict; the store stays unchanged.
func (s *FeedService) Create(ctx context.Context, in dto.FeedDTO) (dto.FeedDTO, error) {
	if strings.TrimSpace(in.Source) == "" || strings.TrimSpace(in.URL) == "" {
		return dto.FeedDTO{}, ErrInvalid
	}
	f := in.Model()
	if err := s.store.Insert(ctx, &f); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return dto.FeedDTO{}, ErrConflict
		}
		return dto.FeedDTO{}, err
	}
	return dto.NewFeedDTO(f), nil
}

// Update replaces a feed identified by its source name.
func (s *FeedService) Update(ctx context.Context, source string, in dto.FeedDTO) (dto.FeedDTO, error) {
	if strings.TrimSpace(in.Source) == "" || strings.TrimSpace(in.URL) == "" {
		return dto.FeedDTO{}, ErrInvalid
	}
	f := in.Model()
	if err := s.store.UpdateBySource(ctx, source, &f); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return dto.FeedDTO{}, ErrNotFound
		}
		return dto.FeedDTO{}, err
	}
	return dto.NewFeedDTO(f), nil
}

// Delete removes a feed by its source name.
func (s *FeedService) Delete(ctx context.Context, source string) error {
	if err := s.store.DeleteBySource(ctx, source); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
