package models

import "time"

// Watch statuses
const (
	StatusWatching  = "watching"
	StatusWatched   = "watched"
	StatusWatchlist = "watchlist"
)

// ValidStatus reports whether s is one of the three watch statuses.
func ValidStatus(s string) bool {
	return s == StatusWatching || s == StatusWatched || s == StatusWatchlist
}

// UserContent tracks one user's relationship with one piece of content.
// At most one record exists per (UserID, ContentID) pair.
type UserContent struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64     `gorm:"not null;uniqueIndex:idx_user_content,priority:1" json:"userId"`
	ContentID      int64     `gorm:"not null;uniqueIndex:idx_user_content,priority:2" json:"contentId"`
	Status         string    `gorm:"not null" json:"status"` // watching, watched, watchlist
	Rating         *int      `json:"rating,omitempty"`       // 1-5 stars
	Progress       *int      `json:"progress,omitempty"`     // minutes for movies, episode count for tv
	CurrentSeason  *int      `gorm:"column:current_season" json:"currentSeason,omitempty"`
	CurrentEpisode *int      `gorm:"column:current_episode" json:"currentEpisode,omitempty"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Content *Content `gorm:"foreignKey:ContentID" json:"content,omitempty"`
}

func (UserContent) TableName() string {
	return "user_content"
}

// UserContentChange carries the fields a caller supplied on an upsert or
// partial update. Nil fields are left untouched.
type UserContentChange struct {
	Status         *string
	Rating         *int
	Progress       *int
	CurrentSeason  *int
	CurrentEpisode *int
}

// Apply merges the supplied fields onto uc.
func (ch UserContentChange) Apply(uc *UserContent) {
	if ch.Status != nil {
		uc.Status = *ch.Status
	}
	if ch.Rating != nil {
		uc.Rating = ch.Rating
	}
	if ch.Progress != nil {
		uc.Progress = ch.Progress
	}
	if ch.CurrentSeason != nil {
		uc.CurrentSeason = ch.CurrentSeason
	}
	if ch.CurrentEpisode != nil {
		uc.CurrentEpisode = ch.CurrentEpisode
	}
}
