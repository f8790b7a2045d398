package repository

import (
	"context"
	"errors"

	"cassette/internal/models"
)

var (
	// ErrNotFound is returned when a lookup target does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint would be violated.
	ErrDuplicate = errors.New("record already exists")
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// Create inserts a user, enforcing username and email uniqueness.
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// ContentRepository defines the interface for catalog operations.
type ContentRepository interface {
	// Create inserts a content record, enforcing title uniqueness.
	Create(ctx context.Context, content *models.Content) error
	FindByID(ctx context.Context, id int64) (*models.Content, error)
	FindByTitle(ctx context.Context, title string) (*models.Content, error)
	List(ctx context.Context) ([]models.Content, error)
}

// UserContentRepository manages user/content relationships. All listings
// return the related Content embedded.
type UserContentRepository interface {
	// Upsert creates the (userID, contentID) record or merges ch onto the
	// existing one. The check-then-write is atomic per pair. The returned
	// bool reports whether a new record was created.
	Upsert(ctx context.Context, userID, contentID int64, ch models.UserContentChange) (*models.UserContent, bool, error)
	// Update merges ch onto the record with the given id, scoped to userID.
	// Returns ErrNotFound if the record does not exist or is not owned.
	Update(ctx context.Context, id, userID int64, ch models.UserContentChange) (*models.UserContent, error)
	ListByUser(ctx context.Context, userID int64) ([]models.UserContent, error)
	ListByUserAndStatus(ctx context.Context, userID int64, status string) ([]models.UserContent, error)
	FindByUserAndContent(ctx context.Context, userID, contentID int64) (*models.UserContent, error)
}

// ReflectionRepository manages reflections. Listings are newest-first with
// the related Content embedded.
type ReflectionRepository interface {
	Create(ctx context.Context, reflection *models.Reflection) error
	ListByUser(ctx context.Context, userID int64) ([]models.Reflection, error)
	ListByUserAndContent(ctx context.Context, userID, contentID int64) ([]models.Reflection, error)
}

// NotificationRepository manages notifications. Listings are newest-first
// with the related Content embedded.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID int64) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
	// MarkRead marks one notification read, scoped to userID. Idempotent;
	// ErrNotFound if the id does not exist or belongs to another user.
	MarkRead(ctx context.Context, id, userID int64) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) error
}

// Repositories bundles the per-entity repositories backed by one store.
type Repositories struct {
	Users         UserRepository
	Content       ContentRepository
	UserContent   UserContentRepository
	Reflections   ReflectionRepository
	Notifications NotificationRepository
}
