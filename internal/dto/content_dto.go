package dto

type CreateContentRequest struct {
	Title     string   `json:"title" binding:"required"`
	Type      string   `json:"type" binding:"required,oneof=movie tv"`
	Year      *int     `json:"year,omitempty" binding:"omitempty,gte=1888"`
	PosterURL *string  `json:"posterUrl,omitempty"`
	Synopsis  *string  `json:"synopsis,omitempty"`
	Genres    []string `json:"genres,omitempty"`
	Cast      []string `json:"cast,omitempty"`
	Runtime   *int     `json:"runtime,omitempty" binding:"omitempty,min=1"`
	Seasons   *int     `json:"seasons,omitempty" binding:"omitempty,min=1"`
	Episodes  *int     `json:"episodes,omitempty" binding:"omitempty,min=1"`
}
