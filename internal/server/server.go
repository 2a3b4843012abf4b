package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	"example.com/fresh-pantry/backend/internal/ai"
	"example.com/fresh-pantry/backend/internal/auth"
	"example.com/fresh-pantry/backend/internal/cache"
	"example.com/fresh-pantry/backend/internal/config"
	"example.com/fresh-pantry/backend/internal/handlers"
	"example.com/fresh-pantry/backend/internal/models"
	"example.com/fresh-pantry/backend/internal/notifications"
	"example.com/fresh-pantry/backend/internal/repository"
	"example.com/fresh-pantry/backend/internal/storage"
)

// New собирает HTTP-сервер Echo с роутами и зависимостями. Возвращенная
// функция останавливает фоновые расписания уведомлений и вызывается при
// завершении сервера.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, mongoClient *mongo.Client, db *mongo.Database, redisClient *redis.Client) (*echo.Echo, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	e.Use(requestLogger(logger))

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	itemRepo := repository.NewItemRepository(db)
	aiRepo := repository.NewAIRepository(db)
	recipeCache := cache.NewRecipeCache(redisClient, cfg.Notify.RecipeTTL)

	var uploader *storage.Uploader
	if cfg.Storage.Enabled {
		up, err := storage.NewUploader(ctx, cfg.Storage)
		if err != nil {
			return nil, nil, fmt.Errorf("init storage uploader: %w", err)
		}
		uploader = up
	}

	var aiClient ai.Client
	switch strings.ToLower(cfg.AI.Provider) {
	case "groq":
		aiClient = ai.NewGroqClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model, cfg.AI.Timeout, cfg.AI.MaxOutputTokens)
	default:
		aiClient = ai.NewGeminiClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model, cfg.AI.Timeout, cfg.AI.MaxOutputTokens)
	}
	aiService := ai.NewService(aiClient)

	notificationHub := notifications.NewHub()
	scheduler := notifications.NewScheduler(notificationHub, logger, cfg.Notify.ExpiringDelay, cfg.Notify.DailyHour, cfg.Notify.DailyMinute)
	replanner := notifications.NewReplanner(scheduler, userPrefs{users: userRepo}, logger)

	// Каждый снимок инвентаря уходит подписчикам SSE и перестраивает
	// расписание пользователя целиком.
	unsubscribe := itemRepo.Subscribe(func(userID uuid.UUID, items []models.PantryItem) {
		notificationHub.Publish(userID, notifications.Event{
			Type: notifications.EventInventoryChanged,
			Data: map[string]int{"total": len(items)},
		})
		replanner.Rebuild(context.Background(), userID, items)
	})

	authHandler := handlers.NewAuthHandler(userRepo, tokenRepo, tokenManager)
	itemHandler := handlers.NewItemHandler(itemRepo)
	scanHandler := handlers.NewScanHandler(aiService, itemRepo, aiRepo, uploader, cfg.AI.Provider, cfg.AI.Model)
	recipeHandler := handlers.NewRecipeHandler(aiService, itemRepo, recipeCache, aiRepo, cfg.AI.Provider, cfg.AI.Model)
	statsHandler := handlers.NewStatsHandler(itemRepo)
	aiHandler := handlers.NewAIHandler(aiService)
	notificationHandler := handlers.NewNotificationHandler(notificationHub, itemRepo)
	adminHandler := handlers.NewAdminHandler(userRepo, aiRepo)
	healthHandler := handlers.NewHealthHandler(mongoClient, redisClient)

	registerRoutes(
		e,
		authHandler,
		itemHandler,
		scanHandler,
		recipeHandler,
		statsHandler,
		aiHandler,
		notificationHandler,
		adminHandler,
		healthHandler,
		auth.JWTMiddleware(tokenManager),
		handlers.AdminMiddleware(userRepo, cfg.Admin.Emails),
		authRateLimiter(cfg.Auth),
		aiRateLimiter(cfg.AI),
	)

	stop := func() {
		unsubscribe()
		replanner.Stop()
	}

	return e, stop, nil
}

// NewHTTPServer создает net/http сервер с заданными таймаутами.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// userPrefs адаптирует репозиторий пользователей под планировщик уведомлений.
type userPrefs struct {
	users *repository.UserRepository
}

func (p userPrefs) NotificationsEnabled(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := p.users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}

	return user.NotificationsEnabled, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

func authRateLimiter(cfg config.AuthConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}

func aiRateLimiter(cfg config.AIConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}
