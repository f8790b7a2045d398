package service

import (
	"context"
	"errors"

	"cassette/internal/dto"
	"cassette/internal/models"
	"cassette/internal/repository"
)

type ReflectionService interface {
	List(ctx context.Context, userID int64) ([]models.Reflection, error)
	ListByContent(ctx context.Context, userID, contentID int64) ([]models.Reflection, error)
	Create(ctx context.Context, userID int64, req dto.CreateReflectionRequest) (*models.Reflection, error)
}

type reflectionService struct {
	repo        repository.ReflectionRepository
	contentRepo repository.ContentRepository
}

func NewReflectionService(repo repository.ReflectionRepository, contentRepo repository.ContentRepository) ReflectionService {
	return &reflectionService{repo: repo, contentRepo: contentRepo}
}

func (s *reflectionService) List(ctx context.Context, userID int64) ([]models.Reflection, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *reflectionService) ListByContent(ctx context.Context, userID, contentID int64) ([]models.Reflection, error) {
	if err := s.requireContent(ctx, contentID); err != nil {
		return nil, err
	}
	return s.repo.ListByUserAndContent(ctx, userID, contentID)
}

// Create validates the content reference before persisting; a reflection
// must never point at a missing content record.
func (s *reflectionService) Create(ctx context.Context, userID int64, req dto.CreateReflectionRequest) (*models.Reflection, error) {
	if err := s.requireContent(ctx, req.ContentID); err != nil {
		return nil, err
	}

	reflection := &models.Reflection{
		UserID:    userID,
		ContentID: req.ContentID,
		Text:      req.Text,
		Timestamp: req.Timestamp,
		Tags:      req.Tags,
	}
	if err := s.repo.Create(ctx, reflection); err != nil {
		return nil, err
	}
	return reflection, nil
}

func (s *reflectionService) requireContent(ctx context.Context, contentID int64) error {
	if _, err := s.contentRepo.FindByID(ctx, contentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrContentNotFound
		}
		return err
	}
	return nil
}
