package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/fresh-pantry/backend/internal/ai"
	"example.com/fresh-pantry/backend/internal/auth"
	"example.com/fresh-pantry/backend/internal/cache"
	"example.com/fresh-pantry/backend/internal/models"
	"example.com/fresh-pantry/backend/internal/repository"
)

type RecipeHandler struct {
	Service  *ai.Service
	Items    *repository.ItemRepository
	Cache    *cache.RecipeCache
	AIRepo   *repository.AIRepository
	Provider string
	Model    string
}

// NewRecipeHandler создает обработчик генерации рецептов.
func NewRecipeHandler(service *ai.Service, items *repository.ItemRepository, recipeCache *cache.RecipeCache, aiRepo *repository.AIRepository, provider, model string) *RecipeHandler {
	return &RecipeHandler{
		Service:  service,
		Items:    items,
		Cache:    recipeCache,
		AIRepo:   aiRepo,
		Provider: provider,
		Model:    model,
	}
}

type RecipeBatchResponse struct {
	Recipes     []models.RecipeSuggestion `json:"recipes"`
	Source      models.BatchSource        `json:"source"`
	GeneratedAt time.Time                 `json:"generated_at"`
}

// Generate просит модель составить рецепты из текущего инвентаря. Партия
// целиком заменяет предыдущую в кэше. Отказ модели не роняет запрос:
// клиент получает встроенные рецепты с Source=fallback.
func (h *RecipeHandler) Generate(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	items, err := h.Items.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	if len(items) == 0 {
		return badRequest(c, "pantry is empty")
	}

	recipeItems := make([]ai.RecipeItem, 0, len(items))
	for _, item := range items {
		recipeItems = append(recipeItems, ai.RecipeItem{
			Name:     item.Name,
			Category: item.Category,
			DaysLeft: item.DaysLeft,
			Urgent:   item.DaysLeft <= ai.UrgencyThreshold,
		})
	}

	batch, prompt, raw, err := h.Service.GenerateRecipes(c.Request().Context(), recipeItems)
	logAIRequest(c.Request().Context(), h.AIRepo, userID, aiRequestGenerateRecipes, h.Provider, h.Model, prompt, raw, err)

	if err != nil {
		batch = ai.ExampleRecipes()
		slog.Warn("recipe generation fallback used",
			slog.String("user_id", userID.String()), slog.Any("error", err))
	}

	if cacheErr := h.Cache.SaveBatch(c.Request().Context(), userID, batch); cacheErr != nil {
		slog.Warn("recipe batch cache write failed",
			slog.String("user_id", userID.String()), slog.Any("error", cacheErr))
	}

	return c.JSON(http.StatusOK, toBatchResponse(batch))
}

// Latest возвращает последнюю сгенерированную партию рецептов.
func (h *RecipeHandler) Latest(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	batch, err := h.Cache.LatestBatch(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return notFound(c, "no recipes generated yet")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toBatchResponse(batch))
}

func toBatchResponse(batch models.RecipeBatch) RecipeBatchResponse {
	return RecipeBatchResponse{
		Recipes:     batch.Recipes,
		Source:      batch.Source,
		GeneratedAt: batch.GeneratedAt.UTC(),
	}
}
