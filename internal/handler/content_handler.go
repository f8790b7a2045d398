package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cassette/internal/dto"
	"cassette/internal/middleware"
	"cassette/internal/service"
)

type ContentHandler struct {
	svc service.ContentService
}

func NewContentHandler(svc service.ContentService) *ContentHandler {
	return &ContentHandler{svc: svc}
}

func (h *ContentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", middleware.RequireAuth(), h.Create)
}

// List returns the whole catalog; browsing does not require a session.
func (h *ContentHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		serverError(c, "Error fetching content")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ContentHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	content, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Content not found"})
			return
		}
		serverError(c, "Error fetching content")
		return
	}
	c.JSON(http.StatusOK, content)
}

func (h *ContentHandler) Create(c *gin.Context) {
	var req dto.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidData(c, err)
		return
	}

	content, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrTitleInUse) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Content with this title already exists"})
			return
		}
		serverError(c, "Server error creating content")
		return
	}
	c.JSON(http.StatusCreated, content)
}
