package dto

type CreateReflectionRequest struct {
	ContentID int64    `json:"contentId" binding:"required"`
	Text      string   `json:"text" binding:"required"`
	Timestamp *string  `json:"timestamp,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}
