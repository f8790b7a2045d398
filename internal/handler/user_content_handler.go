package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cassette/internal/dto"
	"cassette/internal/middleware"
	"cassette/internal/service"
)

type UserContentHandler struct {
	svc service.UserContentService
}

func NewUserContentHandler(svc service.UserContentService) *UserContentHandler {
	return &UserContentHandler{svc: svc}
}

func (h *UserContentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.Use(middleware.RequireAuth())
	rg.GET("", h.List)
	rg.GET("/status/:status", h.ListByStatus)
	rg.POST("", h.Upsert)
	rg.PATCH("/:id", h.Update)
}

func (h *UserContentHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		serverError(c, "Error fetching user content")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *UserContentHandler) ListByStatus(c *gin.Context) {
	items, err := h.svc.ListByStatus(c.Request.Context(), middleware.UserID(c), c.Param("status"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
			return
		}
		serverError(c, "Error fetching user content by status")
		return
	}
	c.JSON(http.StatusOK, items)
}

// Upsert creates the caller's relationship with a content item, or merges
// the supplied fields onto the existing one. 201 on create, 200 on update.
func (h *UserContentHandler) Upsert(c *gin.Context) {
	var req dto.UpsertUserContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidData(c, err)
		return
	}

	uc, created, err := h.svc.Upsert(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Content not found"})
			return
		}
		serverError(c, "Server error creating user content relationship")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, uc)
}

func (h *UserContentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidData(c, err)
		return
	}

	uc, err := h.svc.Update(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		if errors.Is(err, service.ErrUserContentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User content relationship not found"})
			return
		}
		serverError(c, "Error updating user content")
		return
	}
	c.JSON(http.StatusOK, uc)
}
