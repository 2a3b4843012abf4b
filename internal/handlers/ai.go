package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/fresh-pantry/backend/internal/ai"
	"example.com/fresh-pantry/backend/internal/repository"
)

const (
	aiRequestAnalyzeFood     = "analyze_food"
	aiRequestGenerateRecipes = "generate_recipes"
)

type AIHandler struct {
	Service *ai.Service
}

// NewAIHandler создает обработчик сервисных AI-запросов.
func NewAIHandler(service *ai.Service) *AIHandler {
	return &AIHandler{Service: service}
}

type ModelsResponse struct {
	Models []ai.ModelInfo `json:"models"`
}

// ListModels возвращает модели, доступные у настроенного провайдера.
func (h *AIHandler) ListModels(c echo.Context) error {
	models, err := h.Service.ListModels(c.Request().Context())
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ModelsResponse{Models: models})
}

// logAIRequest сохраняет лог обращения к модели. Ошибки записи глушатся:
// журнал вторичен по отношению к ответу пользователю.
func logAIRequest(ctx context.Context, repo *repository.AIRepository, userID uuid.UUID, requestType, provider, model, prompt string, raw []byte, err error) {
	if repo == nil {
		return
	}

	entry := repository.AIRequestLog{
		UserID:          userID,
		RequestType:     requestType,
		Provider:        provider,
		Model:           model,
		Prompt:          prompt,
		ResponsePayload: raw,
		Success:         err == nil,
	}
	if err != nil {
		errMsg := err.Error()
		entry.ErrorMessage = &errMsg
	}

	_ = repo.LogRequest(ctx, entry)
}
