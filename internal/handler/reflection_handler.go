package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cassette/internal/dto"
	"cassette/internal/middleware"
	"cassette/internal/service"
)

type ReflectionHandler struct {
	svc service.ReflectionService
}

func NewReflectionHandler(svc service.ReflectionService) *ReflectionHandler {
	return &ReflectionHandler{svc: svc}
}

func (h *ReflectionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.Use(middleware.RequireAuth())
	rg.GET("", h.List)
	rg.GET("/content/:id", h.ListByContent)
	rg.POST("", h.Create)
}

// List returns the caller's reflections newest-first, content embedded.
func (h *ReflectionHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		serverError(c, "Error fetching reflections")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ReflectionHandler) ListByContent(c *gin.Context) {
	contentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	items, err := h.svc.ListByContent(c.Request.Context(), middleware.UserID(c), contentID)
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Content not found"})
			return
		}
		serverError(c, "Error fetching reflections by content")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ReflectionHandler) Create(c *gin.Context) {
	var req dto.CreateReflectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidData(c, err)
		return
	}

	reflection, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Content not found"})
			return
		}
		serverError(c, "Server error creating reflection")
		return
	}
	c.JSON(http.StatusCreated, reflection)
}
