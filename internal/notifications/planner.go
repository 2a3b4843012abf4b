package notifications

import (
	"example.com/fresh-pantry/backend/internal/freshness"
	"example.com/fresh-pantry/backend/internal/models"
)

// Item содержит минимальную проекцию продукта, нужную планировщику.
type Item struct {
	Name     string `json:"name"`
	DaysLeft int    `json:"daysLeft"`
}

// Bucket группирует продукты одной степени срочности с их именами.
type Bucket struct {
	Count int      `json:"count"`
	Items []string `json:"items"`
}

// PlanSummary содержит сводку инвентаря внутри плана уведомлений.
type PlanSummary struct {
	Total          int `json:"total"`
	NeedsAttention int `json:"needsAttention"`
	HealthScore    int `json:"healthScore"`
}

// Plan содержит производный план уведомлений. Не хранится: пересчитывается на
// каждом изменении инвентаря и целиком заменяет предыдущий.
type Plan struct {
	Expired  Bucket      `json:"expired"`
	Expiring Bucket      `json:"expiring"`
	Fresh    Bucket      `json:"fresh"`
	Summary  PlanSummary `json:"summary"`
}

// BuildPlan раскладывает продукты по корзинам политики уведомлений:
// expired (срок вышел), expiring (до трех дней), fresh (остальное).
// Чистая функция, детерминирована для одного снимка инвентаря.
func BuildPlan(items []Item) Plan {
	plan := Plan{
		Expired:  Bucket{Items: []string{}},
		Expiring: Bucket{Items: []string{}},
		Fresh:    Bucket{Items: []string{}},
	}

	days := make([]int, 0, len(items))
	for _, item := range items {
		days = append(days, item.DaysLeft)

		switch freshness.Classify(item.DaysLeft) {
		case freshness.TierSpoiled:
			plan.Expired.Items = append(plan.Expired.Items, item.Name)
		case freshness.TierUrgent, freshness.TierSoon:
			plan.Expiring.Items = append(plan.Expiring.Items, item.Name)
		default:
			plan.Fresh.Items = append(plan.Fresh.Items, item.Name)
		}
	}

	plan.Expired.Count = len(plan.Expired.Items)
	plan.Expiring.Count = len(plan.Expiring.Items)
	plan.Fresh.Count = len(plan.Fresh.Items)

	summary := freshness.Summarize(days)
	plan.Summary = PlanSummary{
		Total:          summary.Total,
		NeedsAttention: summary.NeedsAttention,
		HealthScore:    summary.HealthScore,
	}

	return plan
}

// ItemsFromPantry собирает проекцию для планировщика из полных записей.
func ItemsFromPantry(items []models.PantryItem) []Item {
	projected := make([]Item, 0, len(items))
	for _, item := range items {
		projected = append(projected, Item{Name: item.Name, DaysLeft: item.DaysLeft})
	}

	return projected
}
