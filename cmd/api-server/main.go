package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"cassette/internal/config"
	"cassette/internal/genai"
	"cassette/internal/handler"
	"cassette/internal/middleware"
	"cassette/internal/repository"
	"cassette/internal/seed"
	"cassette/internal/service"
)

const sessionCookie = "cassette_session"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	repos, err := buildRepositories(cfg)
	if err != nil {
		log.Fatalf("could not set up storage: %v", err)
	}

	if err := seed.EnsureCatalog(context.Background(), repos.Content); err != nil {
		log.Fatalf("could not seed catalog: %v", err)
	}

	var cache *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		cache = redis.NewClient(opts)
	}

	r := buildRouter(cfg, repos, cache)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// buildRepositories selects the storage backend: Postgres when DATABASE_URL
// is set, otherwise the volatile in-memory store.
func buildRepositories(cfg *config.Config) (*repository.Repositories, error) {
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set; using in-memory store")
		return repository.NewMemoryRepositories(), nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return repository.NewPostgresRepositories(db), nil
}

func buildRouter(cfg *config.Config, repos *repository.Repositories, cache *redis.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))

	store := memstore.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
	})
	r.Use(sessions.Sessions(sessionCookie, store))
	r.Use(middleware.CurrentUser())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authService := service.NewAuthService(repos.Users)
	contentService := service.NewContentService(repos.Content)
	userContentService := service.NewUserContentService(repos.UserContent, repos.Content)
	reflectionService := service.NewReflectionService(repos.Reflections, repos.Content)
	notificationService := service.NewNotificationService(repos.Notifications, repos.Content)

	assistant := genai.NewAssistant(genai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AITimeout))
	aiService := service.NewAIService(
		assistant,
		repos.Content,
		repos.UserContent,
		repos.Reflections,
		cache,
		time.Duration(cfg.CacheTTL)*time.Second,
	)

	api := r.Group("/api")
	handler.NewAuthHandler(authService).RegisterRoutes(api.Group("/auth"))
	handler.NewContentHandler(contentService).RegisterRoutes(api.Group("/content"))
	handler.NewUserContentHandler(userContentService).RegisterRoutes(api.Group("/user-content"))
	handler.NewReflectionHandler(reflectionService).RegisterRoutes(api.Group("/reflections"))
	handler.NewNotificationHandler(notificationService).RegisterRoutes(api.Group("/notifications"))
	handler.NewAIHandler(aiService).RegisterRoutes(api.Group("/ai"))

	return r
}
