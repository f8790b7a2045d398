package service

import (
	"context"
	"errors"

	"cassette/internal/dto"
	"cassette/internal/models"
	"cassette/internal/repository"
)

var (
	ErrInvalidStatus       = errors.New("invalid status")
	ErrUserContentNotFound = errors.New("user content relationship not found")
)

type UserContentService interface {
	List(ctx context.Context, userID int64) ([]models.UserContent, error)
	ListByStatus(ctx context.Context, userID int64, status string) ([]models.UserContent, error)
	// Upsert creates or merges the caller's relationship with a content
	// item. The returned bool reports whether a new record was created.
	Upsert(ctx context.Context, userID int64, req dto.UpsertUserContentRequest) (*models.UserContent, bool, error)
	Update(ctx context.Context, userID, id int64, req dto.UpdateUserContentRequest) (*models.UserContent, error)
}

type userContentService struct {
	repo        repository.UserContentRepository
	contentRepo repository.ContentRepository
}

func NewUserContentService(repo repository.UserContentRepository, contentRepo repository.ContentRepository) UserContentService {
	return &userContentService{repo: repo, contentRepo: contentRepo}
}

func (s *userContentService) List(ctx context.Context, userID int64) ([]models.UserContent, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *userContentService) ListByStatus(ctx context.Context, userID int64, status string) ([]models.UserContent, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListByUserAndStatus(ctx, userID, status)
}

func (s *userContentService) Upsert(ctx context.Context, userID int64, req dto.UpsertUserContentRequest) (*models.UserContent, bool, error) {
	if _, err := s.contentRepo.FindByID(ctx, req.ContentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, ErrContentNotFound
		}
		return nil, false, err
	}

	return s.repo.Upsert(ctx, userID, req.ContentID, req.Change())
}

func (s *userContentService) Update(ctx context.Context, userID, id int64, req dto.UpdateUserContentRequest) (*models.UserContent, error) {
	uc, err := s.repo.Update(ctx, id, userID, req.Change())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserContentNotFound
		}
		return nil, err
	}
	return uc, nil
}
