package dto

type SignupRequest struct {
	Username    string  `json:"username" binding:"required,min=3,max=30"`
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=6"`
	DisplayName *string `json:"displayName,omitempty" binding:"omitempty,max=60"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Identity is the session-bound view of a user.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type IdentityResponse struct {
	User Identity `json:"user"`
}
