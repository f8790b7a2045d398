package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"cassette/internal/dto"
	"cassette/internal/middleware"
	"cassette/internal/service"
)

type AIHandler struct {
	svc service.AIService
}

func NewAIHandler(svc service.AIService) *AIHandler {
	return &AIHandler{svc: svc}
}

func (h *AIHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.Use(middleware.RequireAuth())
	rg.POST("/reflection-insight", h.ReflectionInsight)
	rg.POST("/analyze-reflection", h.AnalyzeReflection)
	rg.POST("/recommendations", h.Recommendations)
	rg.GET("/viewing-insights", h.ViewingInsights)
}

func (h *AIHandler) ReflectionInsight(c *gin.Context) {
	var req dto.ReflectionInsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidData(c, err)
		return
	}

	insight, err := h.svc.ReflectionInsight(c.Request.Context(), req.ContentID, req.ReflectionText)
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Content not found"})
			return
		}
		serverError(c, "Error generating insight")
		return
	}
	c.JSON(http.StatusOK, gin.H{"insight": insight.Text})
}

func (h *AIHandler) AnalyzeReflection(c *gin.Context) {
	var req dto.AnalyzeReflectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidData(c, err)
		return
	}

	analysis := h.svc.AnalyzeReflection(c.Request.Context(), req.ReflectionText)
	c.JSON(http.StatusOK, analysis)
}

// Recommendations returns parsed items when the model produced valid JSON,
// otherwise the raw text with parsedSuccessfully=false so the client can
// decide how to render it.
func (h *AIHandler) Recommendations(c *gin.Context) {
	// Both fields are optional; an empty body is a valid request.
	var req dto.RecommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		invalidData(c, err)
		return
	}

	result, err := h.svc.Recommendations(c.Request.Context(), middleware.UserID(c), req.Mood, req.TimeAvailable)
	if err != nil {
		serverError(c, "Error generating recommendations")
		return
	}

	if !result.Parsed {
		c.JSON(http.StatusOK, gin.H{
			"recommendations":    result.Raw,
			"parsedSuccessfully": false,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recommendations":    result.Items,
		"parsedSuccessfully": true,
	})
}

func (h *AIHandler) ViewingInsights(c *gin.Context) {
	insight, err := h.svc.ViewingInsights(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		serverError(c, "Error generating viewing insights")
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": insight.Text})
}
