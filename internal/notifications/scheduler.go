package notifications

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Категории запланированных уведомлений.
const (
	CategoryExpired  = "expired"
	CategoryExpiring = "expiring"
	CategoryDaily    = "daily"
)

// Handle идентифицирует одно запланированное уведомление. Возвращается
// вызывающему коду и передается обратно при следующем перепланировании.
type Handle struct {
	ID       uuid.UUID
	Category string
	cancel   func()
}

// Cancel снимает уведомление с расписания. Повторные вызовы безопасны.
func (h Handle) Cancel() {
	if h.cancel != nil {
		h.cancel()
	}
}

// CancelAll отменяет все переданные уведомления.
func CancelAll(handles []Handle) {
	for _, handle := range handles {
		handle.Cancel()
	}
}

// Scheduler переводит план уведомлений в доставку через хаб: немедленный
// алерт по просроченным, отложенный по истекающим и ежедневный дайджест.
type Scheduler struct {
	hub         *Hub
	logger      *slog.Logger
	delay       time.Duration
	dailyHour   int
	dailyMinute int

	now func() time.Time
}

// NewScheduler создает планировщик. delay задает задержку алерта об
// истекающих продуктах, dailyHour и dailyMinute задают время дайджеста.
func NewScheduler(hub *Hub, logger *slog.Logger, delay time.Duration, dailyHour, dailyMinute int) *Scheduler {
	return &Scheduler{
		hub:         hub,
		logger:      logger,
		delay:       delay,
		dailyHour:   dailyHour,
		dailyMinute: dailyMinute,
		now:         time.Now,
	}
}

// Schedule заменяет расписание пользователя на новое, построенное из плана.
// Сначала отменяются все прежние уведомления, затем ставятся новые, так что
// активен всегда ровно один набор. Если пользователь отключил уведомления,
// расписание молча остается пустым. Ошибок не возвращает: доставка
// уведомлений не должна блокировать работу с инвентарем.
func (s *Scheduler) Schedule(userID uuid.UUID, enabled bool, plan Plan, previous []Handle) []Handle {
	CancelAll(previous)

	if !enabled {
		return nil
	}

	handles := make([]Handle, 0, 3)

	if plan.Expired.Count > 0 {
		s.publish(userID, EventExpiredAlert, expiredPayload(plan.Expired))
		handles = append(handles, Handle{ID: uuid.New(), Category: CategoryExpired})
	}

	if plan.Expiring.Count > 0 {
		payload := expiringPayload(plan.Expiring)
		timer := time.AfterFunc(s.delay, func() {
			s.publish(userID, EventExpiringSoon, payload)
		})
		handles = append(handles, Handle{
			ID:       uuid.New(),
			Category: CategoryExpiring,
			cancel:   func() { timer.Stop() },
		})
	}

	if plan.Summary.Total > 0 {
		done := make(chan struct{})
		var once sync.Once
		go s.runDaily(userID, plan.Summary, done)
		handles = append(handles, Handle{
			ID:       uuid.New(),
			Category: CategoryDaily,
			cancel:   func() { once.Do(func() { close(done) }) },
		})
	}

	return handles
}

// runDaily доставляет дайджест раз в сутки в настроенное время, пока
// расписание не отменят.
func (s *Scheduler) runDaily(userID uuid.UUID, summary PlanSummary, done <-chan struct{}) {
	for {
		wait := time.Until(s.nextDailyTime())
		timer := time.NewTimer(wait)

		select {
		case <-done:
			timer.Stop()
			return
		case <-timer.C:
			s.publish(userID, EventDailyDigest, map[string]interface{}{
				"message":        "Daily pantry check: review what needs attention.",
				"total":          summary.Total,
				"needsAttention": summary.NeedsAttention,
				"healthScore":    summary.HealthScore,
			})
		}
	}
}

func (s *Scheduler) nextDailyTime() time.Time {
	now := s.now()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.dailyHour, s.dailyMinute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}

func (s *Scheduler) publish(userID uuid.UUID, eventType string, payload interface{}) {
	s.hub.Publish(userID, Event{Type: eventType, Data: payload})
	s.logger.Debug("notification delivered", "user_id", userID, "type", eventType)
}

func expiredPayload(bucket Bucket) map[string]interface{} {
	return map[string]interface{}{
		"message": fmt.Sprintf("Expired: %s. Remove or discard these items.", strings.Join(bucket.Items, ", ")),
		"items":   bucket.Items,
		"count":   bucket.Count,
	}
}

func expiringPayload(bucket Bucket) map[string]interface{} {
	return map[string]interface{}{
		"message": fmt.Sprintf("Use soon: %s.", strings.Join(bucket.Items, ", ")),
		"items":   bucket.Items,
		"count":   bucket.Count,
	}
}
