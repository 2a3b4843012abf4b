package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/fresh-pantry/backend/internal/auth"
	"example.com/fresh-pantry/backend/internal/notifications"
	"example.com/fresh-pantry/backend/internal/repository"
)

type NotificationHandler struct {
	Hub   *notifications.Hub
	Items *repository.ItemRepository
}

// NewNotificationHandler создает обработчик уведомлений: SSE-поток и
// просмотр текущего плана.
func NewNotificationHandler(hub *notifications.Hub, items *repository.ItemRepository) *NotificationHandler {
	return &NotificationHandler{Hub: hub, Items: items}
}

// Stream открывает SSE-поток событий для пользователя.
func (h *NotificationHandler) Stream(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		return serverError(c)
	}

	ch, unsubscribe := h.Hub.Subscribe(userID)
	defer unsubscribe()

	_ = writeSSE(c, notifications.Event{Type: "connected", Data: map[string]string{"user_id": userID.String()}})
	flusher.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			if err := writeSSE(c, event); err != nil {
				return nil
			}
			flusher.Flush()
		}
	}
}

// Plan возвращает текущий план уведомлений, построенный по свежему снимку
// инвентаря. План не хранится, поэтому всегда пересчитывается.
func (h *NotificationHandler) Plan(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	items, err := h.Items.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	plan := notifications.BuildPlan(notifications.ItemsFromPantry(items))

	return c.JSON(http.StatusOK, plan)
}

func writeSSE(c echo.Context, event notifications.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err := c.Response().Write([]byte("event: " + event.Type + "\n")); err != nil {
		return err
	}
	if _, err := c.Response().Write([]byte("data: " + string(payload) + "\n\n")); err != nil {
		return err
	}

	return nil
}
