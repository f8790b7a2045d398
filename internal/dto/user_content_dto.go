package dto

import "cassette/internal/models"

type UpsertUserContentRequest struct {
	ContentID      int64  `json:"contentId" binding:"required"`
	Status         string `json:"status" binding:"required,oneof=watching watched watchlist"`
	Rating         *int   `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
	Progress       *int   `json:"progress,omitempty" binding:"omitempty,min=0"`
	CurrentSeason  *int   `json:"currentSeason,omitempty" binding:"omitempty,min=0"`
	CurrentEpisode *int   `json:"currentEpisode,omitempty" binding:"omitempty,min=0"`
}

// Change converts the request into the field set applied by the store.
func (r UpsertUserContentRequest) Change() models.UserContentChange {
	status := r.Status
	return models.UserContentChange{
		Status:         &status,
		Rating:         r.Rating,
		Progress:       r.Progress,
		CurrentSeason:  r.CurrentSeason,
		CurrentEpisode: r.CurrentEpisode,
	}
}

type UpdateUserContentRequest struct {
	Status         *string `json:"status,omitempty" binding:"omitempty,oneof=watching watched watchlist"`
	Rating         *int    `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
	Progress       *int    `json:"progress,omitempty" binding:"omitempty,min=0"`
	CurrentSeason  *int    `json:"currentSeason,omitempty" binding:"omitempty,min=0"`
	CurrentEpisode *int    `json:"currentEpisode,omitempty" binding:"omitempty,min=0"`
}

func (r UpdateUserContentRequest) Change() models.UserContentChange {
	return models.UserContentChange{
		Status:         r.Status,
		Rating:         r.Rating,
		Progress:       r.Progress,
		CurrentSeason:  r.CurrentSeason,
		CurrentEpisode: r.CurrentEpisode,
	}
}
