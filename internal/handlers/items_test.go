package handlers

import (
	"testing"
	"time"

	"example.com/fresh-pantry/backend/internal/freshness"
	"example.com/fresh-pantry/backend/internal/models"
)

// TestToItemResponseTier проверяет раскладку по ярусам свежести в ответе.
func TestToItemResponseTier(t *testing.T) {
	cases := []struct {
		daysLeft int
		tier     freshness.Tier
		label    string
	}{
		{0, freshness.TierSpoiled, "Expired"},
		{1, freshness.TierUrgent, "Use Today"},
		{3, freshness.TierSoon, "3 days left"},
		{10, freshness.TierFresh, "Fresh"},
	}

	for _, tc := range cases {
		response := toItemResponse(models.PantryItem{Name: "Milk", DaysLeft: tc.daysLeft})
		if response.Tier != tc.tier {
			t.Fatalf("daysLeft=%d: expected tier %s, got %s", tc.daysLeft, tc.tier, response.Tier)
		}
		if response.Display.Label != tc.label {
			t.Fatalf("daysLeft=%d: expected label %q, got %q", tc.daysLeft, tc.label, response.Display.Label)
		}
	}
}

// TestExpiryFromDaysLeft проверяет, что дата истечения попадает на конец суток.
func TestExpiryFromDaysLeft(t *testing.T) {
	expiry := expiryFromDaysLeft(3)

	if expiry.Hour() != 23 || expiry.Minute() != 59 || expiry.Second() != 59 {
		t.Fatalf("expected end of day, got %v", expiry)
	}

	expected := time.Now().UTC().AddDate(0, 0, 3)
	if expiry.Year() != expected.Year() || expiry.YearDay() != expected.YearDay() {
		t.Fatalf("expected day %v, got %v", expected, expiry)
	}

	if !expiryFromDaysLeft(0).After(time.Now().UTC().Add(-24 * time.Hour)) {
		t.Fatal("expected zero days to resolve to today")
	}
}
