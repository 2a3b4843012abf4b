package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/fresh-pantry/backend/internal/auth"
	"example.com/fresh-pantry/backend/internal/freshness"
	"example.com/fresh-pantry/backend/internal/repository"
)

type StatsHandler struct {
	Items *repository.ItemRepository
}

// NewStatsHandler создает обработчик статистики инвентаря.
func NewStatsHandler(items *repository.ItemRepository) *StatsHandler {
	return &StatsHandler{Items: items}
}

// PantryStatsResponse отдает обе политики раскладки: корзины уведомлений
// (expired/expiring/fresh, границы 0 и 3) и карточки статистики
// (urgent/soon/fresh, границы 1 и 3). Пороги различаются сознательно и
// не должны сводиться к одной схеме.
type PantryStatsResponse struct {
	Total          int                 `json:"total"`
	HealthScore    int                 `json:"health_score"`
	NeedsAttention int                 `json:"needs_attention"`
	Notification   NotificationBuckets `json:"notification"`
	StatsCards     StatsCardBuckets    `json:"stats_cards"`
}

type NotificationBuckets struct {
	Expired  int `json:"expired"`
	Expiring int `json:"expiring"`
	Fresh    int `json:"fresh"`
}

type StatsCardBuckets struct {
	Urgent int `json:"urgent"`
	Soon   int `json:"soon"`
	Fresh  int `json:"fresh"`
}

// Pantry возвращает сводку по инвентарю пользователя.
func (h *StatsHandler) Pantry(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	items, err := h.Items.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	days := make([]int, 0, len(items))
	for _, item := range items {
		days = append(days, item.DaysLeft)
	}

	summary := freshness.Summarize(days)

	return c.JSON(http.StatusOK, PantryStatsResponse{
		Total:          summary.Total,
		HealthScore:    summary.HealthScore,
		NeedsAttention: summary.NeedsAttention,
		Notification: NotificationBuckets{
			Expired:  summary.Notification.Expired,
			Expiring: summary.Notification.Expiring,
			Fresh:    summary.Notification.Fresh,
		},
		StatsCards: StatsCardBuckets{
			Urgent: summary.StatsCards.Urgent,
			Soon:   summary.StatsCards.Soon,
			Fresh:  summary.StatsCards.Fresh,
		},
	})
}
