package dto

type ReflectionInsightRequest struct {
	ContentID      int64  `json:"contentId" binding:"required"`
	ReflectionText string `json:"reflectionText" binding:"required"`
}

type AnalyzeReflectionRequest struct {
	ReflectionText string `json:"reflectionText" binding:"required"`
}

type RecommendationsRequest struct {
	Mood          string `json:"mood,omitempty"`
	TimeAvailable int    `json:"timeAvailable,omitempty" binding:"omitempty,min=0"`
}
