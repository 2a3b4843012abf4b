package notifications

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"example.com/fresh-pantry/backend/internal/models"
)

// UserPrefs отдает настройку уведомлений пользователя.
type UserPrefs interface {
	NotificationsEnabled(ctx context.Context, userID uuid.UUID) (bool, error)
}

// Replanner подписывается на изменения инвентаря и пересобирает расписание
// уведомлений пользователя на каждом снимке. Хранит активные Handle между
// перепланированиями, чтобы выполнять полную замену.
type Replanner struct {
	scheduler *Scheduler
	prefs     UserPrefs
	logger    *slog.Logger

	mu      sync.Mutex
	handles map[uuid.UUID][]Handle
}

// NewReplanner создает перепланировщик поверх готового Scheduler.
func NewReplanner(scheduler *Scheduler, prefs UserPrefs, logger *slog.Logger) *Replanner {
	return &Replanner{
		scheduler: scheduler,
		prefs:     prefs,
		logger:    logger,
		handles:   make(map[uuid.UUID][]Handle),
	}
}

// Rebuild строит план по свежему снимку инвентаря и заменяет расписание
// пользователя. Ошибки логируются и не всплывают: уведомления не должны
// мешать основной работе с инвентарем.
func (r *Replanner) Rebuild(ctx context.Context, userID uuid.UUID, items []models.PantryItem) {
	plan := BuildPlan(ItemsFromPantry(items))

	enabled, err := r.prefs.NotificationsEnabled(ctx, userID)
	if err != nil {
		r.logger.Warn("failed to load notification preference, skipping schedule",
			"user_id", userID, "error", err)
		enabled = false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.scheduler.Schedule(userID, enabled, plan, r.handles[userID])
	if len(next) == 0 {
		delete(r.handles, userID)
		return
	}
	r.handles[userID] = next
}

// Stop отменяет все активные расписания. Вызывается при остановке сервера.
func (r *Replanner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for userID, handles := range r.handles {
		CancelAll(handles)
		delete(r.handles, userID)
	}
}
