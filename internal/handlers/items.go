package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/fresh-pantry/backend/internal/auth"
	"example.com/fresh-pantry/backend/internal/freshness"
	"example.com/fresh-pantry/backend/internal/models"
	"example.com/fresh-pantry/backend/internal/repository"
)

type ItemHandler struct {
	Items *repository.ItemRepository
}

// NewItemHandler создает обработчик операций с инвентарем.
func NewItemHandler(items *repository.ItemRepository) *ItemHandler {
	return &ItemHandler{Items: items}
}

type CreateItemRequest struct {
	Name       string    `json:"name" validate:"required,max=200"`
	Category   string    `json:"category" validate:"omitempty,max=100"`
	ExpiryDate time.Time `json:"expiry_date" validate:"required"`
	Notes      string    `json:"notes" validate:"omitempty,max=1000"`
}

type UpdateItemRequest struct {
	Name       *string    `json:"name" validate:"omitempty,max=200"`
	Category   *string    `json:"category" validate:"omitempty,max=100"`
	ExpiryDate *time.Time `json:"expiry_date"`
	Notes      *string    `json:"notes" validate:"omitempty,max=1000"`
}

type ItemResponse struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Category   string                 `json:"category"`
	DaysLeft   int                    `json:"days_left"`
	ExpiryDate time.Time              `json:"expiry_date"`
	AddedDate  time.Time              `json:"added_date"`
	Notes      string                 `json:"notes,omitempty"`
	ImageURL   string                 `json:"image_url,omitempty"`
	Analysis   *models.AnalysisResult `json:"ai_analysis,omitempty"`
	Tier       freshness.Tier         `json:"tier"`
	Display    freshness.Display      `json:"display"`
}

type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
}

// List возвращает инвентарь пользователя от новых к старым.
func (h *ItemHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	items, err := h.Items.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	response := ItemListResponse{Items: make([]ItemResponse, 0, len(items))}
	for _, item := range items {
		response.Items = append(response.Items, toItemResponse(item))
	}

	return c.JSON(http.StatusOK, response)
}

// Create добавляет продукт в инвентарь.
func (h *ItemHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	item, err := h.Items.Add(c.Request().Context(), models.PantryItem{
		UserID:     userID,
		Name:       req.Name,
		Category:   req.Category,
		ExpiryDate: req.ExpiryDate,
		Notes:      req.Notes,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "name is required")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, toItemResponse(item))
}

// Get возвращает один продукт.
func (h *ItemHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	item, err := h.Items.GetByID(c.Request().Context(), userID, c.Param("itemId"))
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid item id")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "item not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toItemResponse(item))
}

// Update изменяет продукт по частичному патчу.
func (h *ItemHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	item, err := h.Items.Update(c.Request().Context(), userID, c.Param("itemId"), repository.ItemPatch{
		Name:       req.Name,
		Category:   req.Category,
		ExpiryDate: req.ExpiryDate,
		Notes:      req.Notes,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "nothing to update")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "item not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toItemResponse(item))
}

// Delete удаляет продукт.
func (h *ItemHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.Items.Delete(c.Request().Context(), userID, c.Param("itemId")); err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid item id")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "item not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

func toItemResponse(item models.PantryItem) ItemResponse {
	tier := freshness.Classify(item.DaysLeft)
	display := freshness.DisplayFor(tier)
	display.Label = freshness.Label(item.DaysLeft)

	return ItemResponse{
		ID:         item.ID,
		Name:       item.Name,
		Category:   item.Category,
		DaysLeft:   item.DaysLeft,
		ExpiryDate: item.ExpiryDate,
		AddedDate:  item.AddedDate,
		Notes:      item.Notes,
		ImageURL:   item.ImageURL,
		Analysis:   item.Analysis,
		Tier:       tier,
		Display:    display,
	}
}
