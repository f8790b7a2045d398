package dto

type CreateNotificationRequest struct {
	ContentID int64  `json:"contentId" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

type NotificationCountResponse struct {
	Count int `json:"count"`
}
