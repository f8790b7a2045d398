package models

import "time"

type Notification struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"userId"`
	ContentID int64     `gorm:"not null" json:"contentId"`
	Message   string    `gorm:"not null" json:"message"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	Content *Content `gorm:"foreignKey:ContentID" json:"content,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
