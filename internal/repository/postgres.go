package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cassette/internal/models"
)

// NewPostgresRepositories returns repositories backed by a gorm-managed
// Postgres database. Uniqueness is enforced by the schema's unique indexes.
func NewPostgresRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:         &pgUserRepo{db: db},
		Content:       &pgContentRepo{db: db},
		UserContent:   &pgUserContentRepo{db: db},
		Reflections:   &pgReflectionRepo{db: db},
		Notifications: &pgNotificationRepo{db: db},
	}
}

// AutoMigrate creates or updates the five entity tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Content{},
		&models.UserContent{},
		&models.Reflection{},
		&models.Notification{},
	)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key"):
		return ErrDuplicate
	default:
		return err
	}
}

// --- users ---

type pgUserRepo struct {
	db *gorm.DB
}

func (r *pgUserRepo) Create(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *pgUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *pgUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *pgUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("lower(email) = lower(?)", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// --- content ---

type pgContentRepo struct {
	db *gorm.DB
}

func (r *pgContentRepo) Create(ctx context.Context, content *models.Content) error {
	return translate(r.db.WithContext(ctx).Create(content).Error)
}

func (r *pgContentRepo) FindByID(ctx context.Context, id int64) (*models.Content, error) {
	var content models.Content
	if err := r.db.WithContext(ctx).First(&content, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &content, nil
}

func (r *pgContentRepo) FindByTitle(ctx context.Context, title string) (*models.Content, error) {
	var content models.Content
	if err := r.db.WithContext(ctx).Where("lower(title) = lower(?)", title).First(&content).Error; err != nil {
		return nil, translate(err)
	}
	return &content, nil
}

func (r *pgContentRepo) List(ctx context.Context) ([]models.Content, error) {
	items := make([]models.Content, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return items, nil
}

// --- user content ---

type pgUserContentRepo struct {
	db *gorm.DB
}

func (r *pgUserContentRepo) Upsert(ctx context.Context, userID, contentID int64, ch models.UserContentChange) (*models.UserContent, bool, error) {
	var (
		result  models.UserContent
		created bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.UserContent
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND content_id = ?", userID, contentID).
			First(&existing).Error
		if err == nil {
			ch.Apply(&existing)
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			result = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		record := models.UserContent{UserID: userID, ContentID: contentID}
		ch.Apply(&record)
		// The composite unique index makes a concurrent loser of this
		// insert fail rather than produce a second row.
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		result = record
		created = true
		return nil
	})
	if err != nil {
		return nil, false, translate(err)
	}
	return &result, created, nil
}

func (r *pgUserContentRepo) Update(ctx context.Context, id, userID int64, ch models.UserContentChange) (*models.UserContent, error) {
	var result models.UserContent

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.UserContent
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&existing).Error; err != nil {
			return err
		}
		ch.Apply(&existing)
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		result = existing
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return &result, nil
}

func (r *pgUserContentRepo) ListByUser(ctx context.Context, userID int64) ([]models.UserContent, error) {
	items := make([]models.UserContent, 0)
	err := r.db.WithContext(ctx).
		Preload("Content").
		Where("user_id = ?", userID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list user content: %w", err)
	}
	return items, checkContentRefs(items)
}

func (r *pgUserContentRepo) ListByUserAndStatus(ctx context.Context, userID int64, status string) ([]models.UserContent, error) {
	items := make([]models.UserContent, 0)
	err := r.db.WithContext(ctx).
		Preload("Content").
		Where("user_id = ? AND status = ?", userID, status).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list user content by status: %w", err)
	}
	return items, checkContentRefs(items)
}

func (r *pgUserContentRepo) FindByUserAndContent(ctx context.Context, userID, contentID int64) (*models.UserContent, error) {
	var uc models.UserContent
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		First(&uc).Error
	if err != nil {
		return nil, translate(err)
	}
	return &uc, nil
}

// --- reflections ---

type pgReflectionRepo struct {
	db *gorm.DB
}

func (r *pgReflectionRepo) Create(ctx context.Context, reflection *models.Reflection) error {
	return translate(r.db.WithContext(ctx).Create(reflection).Error)
}

func (r *pgReflectionRepo) ListByUser(ctx context.Context, userID int64) ([]models.Reflection, error) {
	items := make([]models.Reflection, 0)
	err := r.db.WithContext(ctx).
		Preload("Content").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list reflections: %w", err)
	}
	return items, checkReflectionRefs(items)
}

func (r *pgReflectionRepo) ListByUserAndContent(ctx context.Context, userID, contentID int64) ([]models.Reflection, error) {
	items := make([]models.Reflection, 0)
	err := r.db.WithContext(ctx).
		Preload("Content").
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list reflections by content: %w", err)
	}
	return items, checkReflectionRefs(items)
}

// --- notifications ---

type pgNotificationRepo struct {
	db *gorm.DB
}

func (r *pgNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	return translate(r.db.WithContext(ctx).Create(notification).Error)
}

func (r *pgNotificationRepo) ListByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	items := make([]models.Notification, 0)
	err := r.db.WithContext(ctx).
		Preload("Content").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	for _, n := range items {
		if n.Content == nil {
			return nil, fmt.Errorf("notification %d references missing content %d", n.ID, n.ContentID)
		}
	}
	return items, nil
}

func (r *pgNotificationRepo) CountUnread(ctx context.Context, userID int64) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = false", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return int(count), nil
}

func (r *pgNotificationRepo) MarkRead(ctx context.Context, id, userID int64) (*models.Notification, error) {
	var result models.Notification

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n models.Notification
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&n).Error; err != nil {
			return err
		}
		if !n.Read {
			if err := tx.Model(&n).Update("read", true).Error; err != nil {
				return err
			}
			n.Read = true
		}
		result = n
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return &result, nil
}

func (r *pgNotificationRepo) MarkAllRead(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = false", userID).
		Update("read", true).Error
}

func checkContentRefs(items []models.UserContent) error {
	for _, uc := range items {
		if uc.Content == nil {
			return fmt.Errorf("user content %d references missing content %d", uc.ID, uc.ContentID)
		}
	}
	return nil
}

func checkReflectionRefs(items []models.Reflection) error {
	for _, ref := range items {
		if ref.Content == nil {
			return fmt.Errorf("reflection %d references missing content %d", ref.ID, ref.ContentID)
		}
	}
	return nil
}
