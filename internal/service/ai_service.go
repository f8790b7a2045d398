package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"cassette/internal/genai"
	"cassette/internal/models"
	"cassette/internal/repository"
)

const (
	recentWatchLimit      = 5
	reflectionExcerptsMax = 3
)

// AIService orchestrates the generative adapter over the caller's library
// and reflections. All operations are best-effort; the adapter absorbs
// endpoint failures into fallback values.
type AIService interface {
	ReflectionInsight(ctx context.Context, contentID int64, reflectionText string) (genai.Insight, error)
	AnalyzeReflection(ctx context.Context, reflectionText string) genai.Analysis
	Recommendations(ctx context.Context, userID int64, mood string, timeAvailable int) (genai.RecommendationResult, error)
	ViewingInsights(ctx context.Context, userID int64) (genai.Insight, error)
}

type aiService struct {
	assistant       *genai.Assistant
	contentRepo     repository.ContentRepository
	userContentRepo repository.UserContentRepository
	reflectionRepo  repository.ReflectionRepository
	cache           *redis.Client // nil disables caching
	cacheTTL        time.Duration
}

// NewAIService wires the generative assistant to the data store. cache may
// be nil, in which case recommendation results are recomputed per call.
func NewAIService(
	assistant *genai.Assistant,
	contentRepo repository.ContentRepository,
	userContentRepo repository.UserContentRepository,
	reflectionRepo repository.ReflectionRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
) AIService {
	return &aiService{
		assistant:       assistant,
		contentRepo:     contentRepo,
		userContentRepo: userContentRepo,
		reflectionRepo:  reflectionRepo,
		cache:           cache,
		cacheTTL:        cacheTTL,
	}
}

func (s *aiService) ReflectionInsight(ctx context.Context, contentID int64, reflectionText string) (genai.Insight, error) {
	content, err := s.contentRepo.FindByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return genai.Insight{}, ErrContentNotFound
		}
		return genai.Insight{}, err
	}

	return s.assistant.ReflectionInsight(ctx, content.Title, content.Type, reflectionText), nil
}

func (s *aiService) AnalyzeReflection(ctx context.Context, reflectionText string) genai.Analysis {
	return s.assistant.AnalyzeReflection(ctx, reflectionText)
}

func (s *aiService) Recommendations(ctx context.Context, userID int64, mood string, timeAvailable int) (genai.RecommendationResult, error) {
	key := fmt.Sprintf("ai:recommendations:%d:%s:%d", userID, mood, timeAvailable)
	if cached, ok := s.cachedRecommendations(ctx, key); ok {
		return cached, nil
	}

	library, err := s.userContentRepo.ListByUser(ctx, userID)
	if err != nil {
		return genai.RecommendationResult{}, err
	}

	in := genai.RecommendationInput{
		Watched:         watchedTitles(library, 0),
		PreferredGenres: preferredGenres(library),
		Mood:            mood,
		TimeAvailable:   timeAvailable,
	}

	result := s.assistant.Recommendations(ctx, in)
	if result.Parsed && !result.Degraded {
		s.storeRecommendations(ctx, key, result)
	}
	return result, nil
}

func (s *aiService) ViewingInsights(ctx context.Context, userID int64) (genai.Insight, error) {
	library, err := s.userContentRepo.ListByUser(ctx, userID)
	if err != nil {
		return genai.Insight{}, err
	}

	reflections, err := s.reflectionRepo.ListByUser(ctx, userID)
	if err != nil {
		return genai.Insight{}, err
	}

	excerpts := make([]string, 0, reflectionExcerptsMax)
	for _, ref := range reflections {
		if len(excerpts) == reflectionExcerptsMax {
			break
		}
		excerpts = append(excerpts, ref.Text)
	}

	return s.assistant.ViewingInsights(ctx, watchedTitles(library, recentWatchLimit), excerpts), nil
}

func (s *aiService) cachedRecommendations(ctx context.Context, key string) (genai.RecommendationResult, bool) {
	if s.cache == nil {
		return genai.RecommendationResult{}, false
	}

	payload, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[ai] cache read failed: %v", err)
		}
		return genai.RecommendationResult{}, false
	}

	var items []genai.Recommendation
	if err := json.Unmarshal(payload, &items); err != nil {
		log.Printf("[ai] cache entry unreadable: %v", err)
		return genai.RecommendationResult{}, false
	}
	return genai.RecommendationResult{Items: items, Parsed: true}, true
}

func (s *aiService) storeRecommendations(ctx context.Context, key string, result genai.RecommendationResult) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(result.Items)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		log.Printf("[ai] cache write failed: %v", err)
	}
}

// watchedTitles returns titles the user has watched or is watching, newest
// activity last. limit <= 0 means no limit.
func watchedTitles(library []models.UserContent, limit int) []string {
	var titles []string
	for _, item := range library {
		if item.Status != models.StatusWatched && item.Status != models.StatusWatching {
			continue
		}
		if item.Content == nil {
			continue
		}
		titles = append(titles, item.Content.Title)
		if limit > 0 && len(titles) == limit {
			break
		}
	}
	return titles
}

// preferredGenres collects the deduplicated genre set across the user's
// library, preserving first-seen order.
func preferredGenres(library []models.UserContent) []string {
	seen := make(map[string]bool)
	var genres []string
	for _, item := range library {
		if item.Content == nil {
			continue
		}
		for _, g := range item.Content.Genres {
			if !seen[g] {
				seen[g] = true
				genres = append(genres, g)
			}
		}
	}
	return genres
}
