package models

import "time"

// Reflection is a freeform timestamped note a user attaches to content.
// Reflections are immutable once created.
type Reflection struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64      `gorm:"not null;index" json:"userId"`
	ContentID int64      `gorm:"not null;index" json:"contentId"`
	Text      string     `gorm:"not null" json:"text"`
	Timestamp *string    `json:"timestamp,omitempty"` // HH:MM:SS, SXXEYY or a scene description
	Tags      StringList `gorm:"type:text" json:"tags"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`

	Content *Content `gorm:"foreignKey:ContentID" json:"content,omitempty"`
}

func (Reflection) TableName() string {
	return "reflections"
}
