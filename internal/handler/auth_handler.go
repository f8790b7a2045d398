package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cassette/internal/dto"
	"cassette/internal/middleware"
	"cassette/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/signup", h.Signup)
	rg.POST("/login", h.Login)
	rg.POST("/logout", middleware.RequireAuth(), h.Logout)
	rg.GET("/me", h.Me)
}

// Signup creates a user and establishes a session; signup implies login.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidData(c, err)
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), req)
	switch {
	case errors.Is(err, service.ErrNameInUse):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
		return
	case errors.Is(err, service.ErrEmailInUse):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered"})
		return
	case err != nil:
		serverError(c, "Server error during signup")
		return
	}

	if err := middleware.Login(c, user.ID, user.Username); err != nil {
		log.Printf("session save after signup failed: %v", err)
		serverError(c, "Error logging in after signup")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "username": user.Username})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidData(c, err)
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Incorrect username or password"})
			return
		}
		serverError(c, "Server error during login")
		return
	}

	if err := middleware.Login(c, user.ID, user.Username); err != nil {
		log.Printf("session save after login failed: %v", err)
		serverError(c, "Error establishing session")
		return
	}

	c.JSON(http.StatusOK, dto.IdentityResponse{User: dto.Identity{ID: user.ID, Username: user.Username}})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.Logout(c); err != nil {
		log.Printf("session destroy failed: %v", err)
		serverError(c, "Error logging out")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the current identity, or 401 when no session is present. The
// route itself is public so the client can probe login state.
func (h *AuthHandler) Me(c *gin.Context) {
	id, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return
	}
	username := c.GetString(middleware.ContextUsername)
	c.JSON(http.StatusOK, dto.IdentityResponse{User: dto.Identity{ID: id.(int64), Username: username}})
}
