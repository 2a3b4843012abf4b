package freshness

import "fmt"

type Tier string

const (
	TierSpoiled Tier = "spoiled"
	TierUrgent  Tier = "urgent"
	TierSoon    Tier = "soon"
	TierFresh   Tier = "fresh"
)

// Display задает статичную тройку отображения уровня свежести для UI.
type Display struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

var displays = map[Tier]Display{
	TierSpoiled: {Color: "#D32F2F", Icon: "alert-circle", Label: "Expired"},
	TierUrgent:  {Color: "#F57C00", Icon: "alert-triangle", Label: "Use Today"},
	TierSoon:    {Color: "#FBC02D", Icon: "clock", Label: "%d days left"},
	TierFresh:   {Color: "#388E3C", Icon: "check-circle", Label: "Fresh"},
}

var tierRanks = map[Tier]int{
	TierSpoiled: 3,
	TierUrgent:  2,
	TierSoon:    1,
	TierFresh:   0,
}

// Classify относит срок годности к уровню свежести. Границы включительные,
// проверяются по порядку: первая сработавшая побеждает. Функция тотальна:
// любое целое, включая отрицательные, дает уровень.
func Classify(daysLeft int) Tier {
	switch {
	case daysLeft <= 0:
		return TierSpoiled
	case daysLeft <= 1:
		return TierUrgent
	case daysLeft <= 3:
		return TierSoon
	default:
		return TierFresh
	}
}

// DisplayFor возвращает тройку отображения для уровня.
func DisplayFor(tier Tier) Display {
	display, ok := displays[tier]
	if !ok {
		return displays[TierFresh]
	}
	return display
}

// Label форматирует подпись для значения daysLeft.
func Label(daysLeft int) string {
	tier := Classify(daysLeft)
	display := displays[tier]
	if tier == TierSoon {
		return fmt.Sprintf(display.Label, daysLeft)
	}
	return display.Label
}

// Rank задает строгий порядок срочности: spoiled > urgent > soon > fresh.
func Rank(tier Tier) int {
	return tierRanks[tier]
}
