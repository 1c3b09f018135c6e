package dto

import "newswire/models"

// FeedDTO is the API representation of a feed source.
type FeedDTO struct {
	Source string `json:"source" binding:"required"`
	URL    string `json:"url" binding:"required"`
	Active *bool  `json:"active"`
}

func NewFeedDTO(f models.Feed) FeedDTO {
	active := f.Active
	return FeedDTO{
		Source: f.Source,
		URL:    f.URL,
		Active: &active,
	}
}

// Model converts the DTO to a feed document. A missing active flag
// defaults to true.
func (d FeedDTO) Model() models.Feed {
	active := true
	if d.Active != nil {
		active = *d.Active
	}
	return models.Feed{
		Source: d.Source,
		URL:    d.URL,
		Active: active,
	}
}
