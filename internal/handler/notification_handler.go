package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cassette/internal/dto"
	"cassette/internal/middleware"
	"cassette/internal/service"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.Use(middleware.RequireAuth())
	rg.GET("", h.List)
	rg.GET("/count", h.UnreadCount)
	rg.POST("", h.Create)
	rg.PATCH("/:id/read", h.MarkRead)
	rg.POST("/read-all", h.MarkAllRead)
}

func (h *NotificationHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		serverError(c, "Error fetching notifications")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.svc.UnreadCount(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		serverError(c, "Error fetching notification count")
		return
	}
	c.JSON(http.StatusOK, dto.NotificationCountResponse{Count: count})
}

// Create exists for the content-update detection process and seeding; it is
// session-scoped like every other write.
func (h *NotificationHandler) Create(c *gin.Context) {
	var req dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidData(c, err)
		return
	}

	notification, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Content not found"})
			return
		}
		serverError(c, "Server error creating notification")
		return
	}
	c.JSON(http.StatusCreated, notification)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	notification, err := h.svc.MarkRead(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Notification not found"})
			return
		}
		serverError(c, "Error marking notification as read")
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.svc.MarkAllRead(c.Request.Context(), middleware.UserID(c)); err != nil {
		serverError(c, "Error marking all notifications as read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
