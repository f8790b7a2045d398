package service

import (
	"context"
	"errors"

	"cassette/internal/dto"
	"cassette/internal/models"
	"cassette/internal/repository"
)

var (
	ErrTitleInUse      = errors.New("content with this title already exists")
	ErrContentNotFound = errors.New("content not found")
)

type ContentService interface {
	List(ctx context.Context) ([]models.Content, error)
	Get(ctx context.Context, id int64) (*models.Content, error)
	Create(ctx context.Context, req dto.CreateContentRequest) (*models.Content, error)
}

type contentService struct {
	repo repository.ContentRepository
}

func NewContentService(repo repository.ContentRepository) ContentService {
	return &contentService{repo: repo}
}

func (s *contentService) List(ctx context.Context) ([]models.Content, error) {
	return s.repo.List(ctx)
}

func (s *contentService) Get(ctx context.Context, id int64) (*models.Content, error) {
	content, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return content, nil
}

func (s *contentService) Create(ctx context.Context, req dto.CreateContentRequest) (*models.Content, error) {
	content := &models.Content{
		Title:     req.Title,
		Type:      req.Type,
		Year:      req.Year,
		PosterURL: req.PosterURL,
		Synopsis:  req.Synopsis,
		Genres:    req.Genres,
		Cast:      req.Cast,
		Runtime:   req.Runtime,
		Seasons:   req.Seasons,
		Episodes:  req.Episodes,
	}

	if err := s.repo.Create(ctx, content); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTitleInUse
		}
		return nil, err
	}
	return content, nil
}
