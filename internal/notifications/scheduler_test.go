package notifications

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testScheduler(hub *Hub, delay time.Duration) *Scheduler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewScheduler(hub, logger, delay, 9, 0)
}

// TestScheduleImmediateExpired проверяет немедленный алерт о просроченных.
func TestScheduleImmediateExpired(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()

	scheduler := testScheduler(hub, time.Hour)
	plan := BuildPlan([]Item{{Name: "Milk", DaysLeft: 0}})

	handles := scheduler.Schedule(userID, true, plan, nil)
	defer CancelAll(handles)

	select {
	case event := <-ch:
		if event.Type != EventExpiredAlert {
			t.Fatalf("expected %s, got %s", EventExpiredAlert, event.Type)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected immediate expired alert")
	}
}

// TestScheduleDelayedExpiring проверяет отложенный алерт об истекающих.
func TestScheduleDelayedExpiring(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()

	scheduler := testScheduler(hub, 10*time.Millisecond)
	plan := BuildPlan([]Item{{Name: "Spinach", DaysLeft: 2}})

	handles := scheduler.Schedule(userID, true, plan, nil)
	defer CancelAll(handles)

	select {
	case event := <-ch:
		if event.Type != EventExpiringSoon {
			t.Fatalf("expected %s, got %s", EventExpiringSoon, event.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("expected delayed expiring alert")
	}
}

// TestScheduleFullReplace проверяет отмену прежнего расписания: отложенный
// алерт из первого набора не должен дойти после замены.
func TestScheduleFullReplace(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()

	scheduler := testScheduler(hub, 50*time.Millisecond)

	first := scheduler.Schedule(userID, true, BuildPlan([]Item{{Name: "Spinach", DaysLeft: 2}}), nil)
	second := scheduler.Schedule(userID, true, BuildPlan([]Item{{Name: "Potatoes", DaysLeft: 10}}), first)
	defer CancelAll(second)

	select {
	case event := <-ch:
		t.Fatalf("unexpected event %s after replace", event.Type)
	case <-time.After(150 * time.Millisecond):
	}
}

// TestScheduleDisabled проверяет, что опт-аут молча оставляет расписание
// пустым даже при просроченных продуктах.
func TestScheduleDisabled(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()

	scheduler := testScheduler(hub, time.Hour)
	plan := BuildPlan([]Item{{Name: "Milk", DaysLeft: 0}})

	handles := scheduler.Schedule(userID, false, plan, nil)
	if len(handles) != 0 {
		t.Fatalf("expected no handles, got %d", len(handles))
	}

	select {
	case event := <-ch:
		t.Fatalf("unexpected event %s for disabled user", event.Type)
	case <-time.After(100 * time.Millisecond):
	}
}

// TestScheduleCategories проверяет состав расписания для смешанного
// инвентаря: алерт о просроченных, алерт об истекающих и дайджест.
func TestScheduleCategories(t *testing.T) {
	hub := NewHub()
	scheduler := testScheduler(hub, time.Hour)

	plan := BuildPlan([]Item{
		{Name: "Milk", DaysLeft: 0},
		{Name: "Spinach", DaysLeft: 2},
		{Name: "Potatoes", DaysLeft: 10},
	})

	handles := scheduler.Schedule(uuid.New(), true, plan, nil)
	defer CancelAll(handles)

	seen := make(map[string]bool, len(handles))
	for _, handle := range handles {
		seen[handle.Category] = true
	}

	for _, category := range []string{CategoryExpired, CategoryExpiring, CategoryDaily} {
		if !seen[category] {
			t.Errorf("missing %s notification", category)
		}
	}
}
