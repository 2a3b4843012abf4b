package freshness

import "math"

// Здесь сосуществуют две схемы бакетирования с разными границами. Они
// сознательно не объединены (см. DESIGN.md): политика уведомлений делит
// по 0 и 3, политика карточек статистики по 1 и 3.

// NotificationBuckets считает по политике уведомлений: expired (d <= 0),
// expiring (0 < d <= 3), fresh (d > 3).
type NotificationBuckets struct {
	Expired  int `json:"expired"`
	Expiring int `json:"expiring"`
	Fresh    int `json:"fresh"`
}

// StatsCardBuckets считает по политике карточек статистики: urgent (d <= 1),
// soon (1 < d <= 3), fresh (d > 3).
type StatsCardBuckets struct {
	Urgent int `json:"urgent"`
	Soon   int `json:"soon"`
	Fresh  int `json:"fresh"`
}

type Summary struct {
	Total          int                 `json:"total"`
	Notification   NotificationBuckets `json:"notification"`
	StatsCards     StatsCardBuckets    `json:"stats_cards"`
	HealthScore    int                 `json:"health_score"`
	NeedsAttention int                 `json:"needs_attention"`
}

// Summarize агрегирует инвентарь по обеим политикам. Каждый элемент
// попадает ровно в один бакет каждой политики. Пустой инвентарь считается
// полностью здоровым (HealthScore = 100).
func Summarize(daysLeft []int) Summary {
	summary := Summary{Total: len(daysLeft)}

	for _, d := range daysLeft {
		switch Classify(d) {
		case TierSpoiled:
			summary.Notification.Expired++
			summary.StatsCards.Urgent++
		case TierUrgent:
			summary.Notification.Expiring++
			summary.StatsCards.Urgent++
		case TierSoon:
			summary.Notification.Expiring++
			summary.StatsCards.Soon++
		default:
			summary.Notification.Fresh++
			summary.StatsCards.Fresh++
		}
	}

	summary.NeedsAttention = summary.Notification.Expired + summary.Notification.Expiring

	if summary.Total == 0 {
		summary.HealthScore = 100
		return summary
	}

	summary.HealthScore = int(math.Round(100 * float64(summary.Notification.Fresh) / float64(summary.Total)))
	return summary
}
