package models

import "time"

// Content types
const (
	ContentTypeMovie = "movie"
	ContentTypeTV    = "tv"
)

type Content struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string     `gorm:"uniqueIndex;not null" json:"title"`
	Type      string     `gorm:"not null" json:"type"` // "movie" or "tv"
	Year      *int       `json:"year,omitempty"`
	PosterURL *string    `gorm:"column:poster_url" json:"posterUrl,omitempty"`
	Synopsis  *string    `json:"synopsis,omitempty"`
	Genres    StringList `gorm:"type:text" json:"genres"`
	Cast      StringList `gorm:"type:text" json:"cast"`
	Runtime   *int       `json:"runtime,omitempty"`  // minutes, movies only
	Seasons   *int       `json:"seasons,omitempty"`  // tv only
	Episodes  *int       `json:"episodes,omitempty"` // tv only
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (Content) TableName() string {
	return "content"
}
