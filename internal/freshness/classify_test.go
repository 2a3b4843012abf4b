package freshness

import (
	"strings"
	"testing"
)

// TestClassifyBoundaries проверяет включительные границы уровней.
func TestClassifyBoundaries(t *testing.T) {
	cases := map[int]Tier{
		-5: TierSpoiled,
		0:  TierSpoiled,
		1:  TierUrgent,
		2:  TierSoon,
		3:  TierSoon,
		4:  TierFresh,
		30: TierFresh,
	}

	for daysLeft, want := range cases {
		if got := Classify(daysLeft); got != want {
			t.Fatalf("Classify(%d): expected %s, got %s", daysLeft, want, got)
		}
	}
}

// TestClassifyMonotonic проверяет монотонность: меньше дней не менее срочно.
func TestClassifyMonotonic(t *testing.T) {
	for d := -3; d < 10; d++ {
		if Rank(Classify(d)) < Rank(Classify(d+1)) {
			t.Fatalf("rank decreased between %d and %d", d, d+1)
		}
	}
}

// TestLabel проверяет подписи уровней.
func TestLabel(t *testing.T) {
	if got := Label(1); got != "Use Today" {
		t.Fatalf("expected Use Today, got %s", got)
	}

	if got := Label(2); got != "2 days left" {
		t.Fatalf("expected 2 days left, got %s", got)
	}

	if got := Label(0); got != "Expired" {
		t.Fatalf("expected Expired, got %s", got)
	}
}

// TestDisplayForUnknownTier проверяет фолбэк для неизвестного уровня.
func TestDisplayForUnknownTier(t *testing.T) {
	display := DisplayFor(Tier("bogus"))
	if display != displays[TierFresh] {
		t.Fatalf("expected fresh display, got %+v", display)
	}

	if !strings.HasPrefix(display.Color, "#") {
		t.Fatalf("expected hex color, got %s", display.Color)
	}
}
