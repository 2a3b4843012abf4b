package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type HealthHandler struct {
	Mongo *mongo.Client
	Redis *redis.Client
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// NewHealthHandler создает обработчик проверки состояния сервиса.
func NewHealthHandler(mongoClient *mongo.Client, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{Mongo: mongoClient, Redis: redisClient}
}

// Health проверяет доступность зависимостей и возвращает статус сервиса.
func (h *HealthHandler) Health(c echo.Context) error {
	checks := map[string]string{}
	status := "ok"
	code := http.StatusOK

	pingCtx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if h.Mongo != nil {
		if err := h.Mongo.Ping(pingCtx, readpref.Primary()); err != nil {
			checks["mongo"] = "unavailable"
			status = "degraded"
			code = http.StatusServiceUnavailable
		} else {
			checks["mongo"] = "ok"
		}
	}

	if h.Redis != nil {
		if err := h.Redis.Ping(pingCtx).Err(); err != nil {
			checks["redis"] = "unavailable"
			status = "degraded"
			code = http.StatusServiceUnavailable
		} else {
			checks["redis"] = "ok"
		}
	}

	return c.JSON(code, HealthResponse{Status: status, Checks: checks})
}
