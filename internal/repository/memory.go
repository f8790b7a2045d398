package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"cassette/internal/models"
)

// memoryStore is the default keyed-map backend. A single RWMutex guards the
// maps; the user-content upsert and the duplicate checks run entirely under
// the write lock, so check-then-write sequences cannot interleave.
type memoryStore struct {
	mu sync.RWMutex

	users         map[int64]models.User
	content       map[int64]models.Content
	userContent   map[int64]models.UserContent
	reflections   map[int64]models.Reflection
	notifications map[int64]models.Notification

	userSeq         int64
	contentSeq      int64
	userContentSeq  int64
	reflectionSeq   int64
	notificationSeq int64
}

// NewMemoryRepositories returns repositories backed by a fresh in-memory
// store. State lives for the process lifetime only.
func NewMemoryRepositories() *Repositories {
	s := &memoryStore{
		users:         make(map[int64]models.User),
		content:       make(map[int64]models.Content),
		userContent:   make(map[int64]models.UserContent),
		reflections:   make(map[int64]models.Reflection),
		notifications: make(map[int64]models.Notification),
	}
	return &Repositories{
		Users:         (*memoryUserRepo)(s),
		Content:       (*memoryContentRepo)(s),
		UserContent:   (*memoryUserContentRepo)(s),
		Reflections:   (*memoryReflectionRepo)(s),
		Notifications: (*memoryNotificationRepo)(s),
	}
}

// attachContent resolves the content reference for a listing row. Callers
// hold at least the read lock. A missing target is an integrity failure,
// never a tolerated nil: creation routes validate the reference exists.
func (s *memoryStore) attachContent(kind string, id, contentID int64) (*models.Content, error) {
	c, ok := s.content[contentID]
	if !ok {
		return nil, fmt.Errorf("%s %d references missing content %d", kind, id, contentID)
	}
	return &c, nil
}

// --- users ---

type memoryUserRepo memoryStore

func (r *memoryUserRepo) Create(_ context.Context, user *models.User) error {
	s := (*memoryStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username || strings.EqualFold(u.Email, user.Email) {
			return ErrDuplicate
		}
	}

	s.userSeq++
	user.ID = s.userSeq
	user.CreatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	s := (*memoryStore)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s := (*memoryStore)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s := (*memoryStore)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// --- content ---

type memoryContentRepo memoryStore

func (r *memoryContentRepo) Create(_ context.Context, content *models.Content) error {
	s := (*memoryStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.content {
		if strings.EqualFold(c.Title, content.Title) {
			return ErrDuplicate
		}
	}

	s.contentSeq++
	content.ID = s.contentSeq
	content.CreatedAt = time.Now()
	s.content[content.ID] = *content
	return nil
}

func (r *memoryContentRepo) FindByID(_ context.Context, id int64) (*models.Content, error) {
	s := (*memoryStore)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.content[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *memoryContentRepo) FindByTitle(_ context.Context, title string) (*models.Content, error) {
	s := (*memoryStore)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.content {
		if strings.EqualFold(c.Title, title) {
			c := c
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryContentRepo) List(_ context.Context) ([]models.Content, error) {
	s := (*memoryStore)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.Content, 0, len(s.content))
	for _, c := range s.content {
		items = append(items, c)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// --- user content ---

type memoryUserContentRepo memoryStore

func (r *memoryUserContentRepo) Upsert(_ context.Context, userID, contentID int64, ch models.UserContentChange) (*models.UserContent, bool, error) {
	s := (*memoryStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, uc := range s.userContent {
		if uc.UserID == userID && uc.ContentID == contentID {
			ch.Apply(&uc)
			uc.UpdatedAt = time.Now()
			s.userContent[id] = uc
			return &uc, false, nil
		}
	}

	s.userContentSeq++
	uc := models.UserContent{
		ID:        s.userContentSeq,
		UserID:    userID,
		ContentID: contentID,
		UpdatedAt: time.Now(),
	}
	ch.Apply(&uc)
	s.userContent[uc.ID] = uc
	return &uc, true, nil
}

func (r *memoryUserContentRepo) Update(_ context.Context, id, userID int64, ch models.UserContentChange) (*models.UserContent, error) {
	s := (*memoryStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	uc, ok := s.userContent[id]
	if !ok || uc.UserID != userID {
		return nil, ErrNotFound
	}

	ch.Apply(&uc)
	uc.UpdatedAt = time.Now()
	s.userContent[id] = uc
	return &uc, nil
}

func (r *memoryUserContentRepo) ListByUser(ctx context.Context, userID int64) ([]models.UserContent, error) {
	return r.list(ctx, userID, "")
}

func (r *memoryUserContentRepo) ListByUserAndStatus(ctx context.Context, userID int64, status string) ([]models.UserContent, error) {
	return r.list(ctx, userID, status)
}

func (r *memoryUserContentRepo) list(_ context.Context, userID int64, status string) ([]models.UserContent, error) {
	s := (*memoryStore)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.UserContent, 0)
	for _, uc := range s.userContent {
		if uc.UserID != userID || (status != "" && uc.Status != status) {
			continue
		}
		content, err := s.attachContent("user content", uc.ID, uc.ContentID)
		if err != nil {
			return nil, err
		}
		uc.Content = content
		items = append(items, uc)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *memoryUserContentRepo) FindByUserAndContent(_ context.Context, userID, contentID int64) (*models.UserContent, error) {
	s := (*memoryStore)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, uc := range s.userContent {
		if uc.UserID == userID && uc.ContentID == contentID {
			uc := uc
			return &uc, nil
		}
	}
	return nil, ErrNotFound
}

// --- reflections ---

type memoryReflectionRepo memoryStore

func (r *memoryReflectionRepo) Create(_ context.Context, reflection *models.Reflection) error {
	s := (*memoryStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reflectionSeq++
	reflection.ID = s.reflectionSeq
	reflection.CreatedAt = time.Now()
	stored := *reflection
	stored.Content = nil
	s.reflections[stored.ID] = stored
	return nil
}

func (r *memoryReflectionRepo) ListByUser(ctx context.Context, userID int64) ([]models.Reflection, error) {
	return r.list(ctx, userID, 0)
}

func (r *memoryReflectionRepo) ListByUserAndContent(ctx context.Context, userID, contentID int64) ([]models.Reflection, error) {
	return r.list(ctx, userID, contentID)
}

func (r *memoryReflectionRepo) list(_ context.Context, userID, contentID int64) ([]models.Reflection, error) {
	s := (*memoryStore)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.Reflection, 0)
	for _, ref := range s.reflections {
		if ref.UserID != userID || (contentID != 0 && ref.ContentID != contentID) {
			continue
		}
		content, err := s.attachContent("reflection", ref.ID, ref.ContentID)
		if err != nil {
			return nil, err
		}
		ref.Content = content
		items = append(items, ref)
	}
	sortNewestFirst(items, func(r models.Reflection) (time.Time, int64) { return r.CreatedAt, r.ID })
	return items, nil
}

// --- notifications ---

type memoryNotificationRepo memoryStore

func (r *memoryNotificationRepo) Create(_ context.Context, notification *models.Notification) error {
	s := (*memoryStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	notification.ID = s.notificationSeq
	notification.CreatedAt = time.Now()
	stored := *notification
	stored.Content = nil
	s.notifications[stored.ID] = stored
	return nil
}

func (r *memoryNotificationRepo) ListByUser(_ context.Context, userID int64) ([]models.Notification, error) {
	s := (*memoryStore)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.Notification, 0)
	for _, n := range s.notifications {
		if n.UserID != userID {
			continue
		}
		content, err := s.attachContent("notification", n.ID, n.ContentID)
		if err != nil {
			return nil, err
		}
		n.Content = content
		items = append(items, n)
	}
	sortNewestFirst(items, func(n models.Notification) (time.Time, int64) { return n.CreatedAt, n.ID })
	return items, nil
}

func (r *memoryNotificationRepo) CountUnread(_ context.Context, userID int64) (int, error) {
	s := (*memoryStore)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *memoryNotificationRepo) MarkRead(_ context.Context, id, userID int64) (*models.Notification, error) {
	s := (*memoryStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return nil, ErrNotFound
	}

	n.Read = true
	s.notifications[id] = n
	return &n, nil
}

func (r *memoryNotificationRepo) MarkAllRead(_ context.Context, userID int64) error {
	s := (*memoryStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			s.notifications[id] = n
		}
	}
	return nil
}

// sortNewestFirst orders items descending by creation time, breaking ties on
// the monotonic ID so same-instant creations stay deterministic.
func sortNewestFirst[T any](items []T, key func(T) (time.Time, int64)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if ti.Equal(tj) {
			return idi > idj
		}
		return ti.After(tj)
	})
}
