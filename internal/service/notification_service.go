package service

import (
	"context"
	"errors"

	"cassette/internal/dto"
	"cassette/internal/models"
	"cassette/internal/repository"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationService interface {
	List(ctx context.Context, userID int64) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	Create(ctx context.Context, userID int64, req dto.CreateNotificationRequest) (*models.Notification, error)
	// MarkRead is idempotent; marking an already-read notification again is
	// not an error.
	MarkRead(ctx context.Context, userID, id int64) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) error
}

type notificationService struct {
	repo        repository.NotificationRepository
	contentRepo repository.ContentRepository
}

func NewNotificationService(repo repository.NotificationRepository, contentRepo repository.ContentRepository) NotificationService {
	return &notificationService{repo: repo, contentRepo: contentRepo}
}

func (s *notificationService) List(ctx context.Context, userID int64) ([]models.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *notificationService) Create(ctx context.Context, userID int64, req dto.CreateNotificationRequest) (*models.Notification, error) {
	if _, err := s.contentRepo.FindByID(ctx, req.ContentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}

	notification := &models.Notification{
		UserID:    userID,
		ContentID: req.ContentID,
		Message:   req.Message,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id int64) (*models.Notification, error) {
	n, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return n, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}
