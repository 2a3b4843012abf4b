package repository

import (
	"testing"
	"time"
)

// TestDaysLeftFrom проверяет пересчет остатка дней из даты истечения.
func TestDaysLeftFrom(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		expiry   time.Time
		expected int
	}{
		{"already expired", now.Add(-48 * time.Hour), 0},
		{"expires this instant", now, 0},
		{"expires in an hour", now.Add(time.Hour), 1},
		{"expires in exactly one day", now.Add(24 * time.Hour), 1},
		{"expires in 25 hours", now.Add(25 * time.Hour), 2},
		{"expires in a week", now.Add(7 * 24 * time.Hour), 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := daysLeftFrom(tc.expiry, now); got != tc.expected {
				t.Fatalf("expected %d, got %d", tc.expected, got)
			}
		})
	}
}
