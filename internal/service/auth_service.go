package service

import (
	"context"
	"errors"

	"cassette/internal/dto"
	"cassette/internal/middleware/auth"
	"cassette/internal/models"
	"cassette/internal/repository"
)

var (
	ErrNameInUse          = errors.New("username already in use")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Bcrypt hash of an unused password, compared when the username does not
// exist so both failure paths take about the same time.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e"

type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Signup registers a new user. The store's uniqueness constraints back up
// the pre-checks, so a race between two signups cannot create two records.
func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*models.User, error) {
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrNameInUse
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    hashedPassword,
		DisplayName: req.DisplayName,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNameInUse
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates a username/password pair.
func (s *authService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		auth.VerifyPassword(dummyHash, password)
		return nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
