package freshness

import "testing"

// TestSummarizeEmpty проверяет, что пустой инвентарь считается здоровым.
func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)

	if summary.HealthScore != 100 {
		t.Fatalf("expected health score 100, got %d", summary.HealthScore)
	}
	if summary.Total != 0 || summary.NeedsAttention != 0 {
		t.Fatalf("expected zero counts, got %+v", summary)
	}
}

// TestSummarizeScenario проверяет сценарий из трех продуктов.
func TestSummarizeScenario(t *testing.T) {
	summary := Summarize([]int{0, 2, 10})

	if summary.Notification.Expired != 1 || summary.Notification.Expiring != 1 || summary.Notification.Fresh != 1 {
		t.Fatalf("unexpected notification buckets: %+v", summary.Notification)
	}

	if summary.HealthScore != 33 {
		t.Fatalf("expected health score 33, got %d", summary.HealthScore)
	}

	if summary.NeedsAttention != 2 {
		t.Fatalf("expected needs attention 2, got %d", summary.NeedsAttention)
	}
}

// TestSummarizePoliciesDiffer проверяет расхождение политик на границе d=1.
func TestSummarizePoliciesDiffer(t *testing.T) {
	summary := Summarize([]int{1})

	// Политика уведомлений относит d=1 к expiring, а карточки к urgent.
	if summary.Notification.Expiring != 1 {
		t.Fatalf("expected expiring 1, got %+v", summary.Notification)
	}
	if summary.StatsCards.Urgent != 1 {
		t.Fatalf("expected urgent 1, got %+v", summary.StatsCards)
	}
}

// TestSummarizePartition проверяет, что бакеты каждой политики дают total.
func TestSummarizePartition(t *testing.T) {
	input := []int{-2, 0, 1, 2, 3, 4, 7, 14}
	summary := Summarize(input)

	notification := summary.Notification.Expired + summary.Notification.Expiring + summary.Notification.Fresh
	if notification != summary.Total {
		t.Fatalf("notification buckets sum %d, total %d", notification, summary.Total)
	}

	stats := summary.StatsCards.Urgent + summary.StatsCards.Soon + summary.StatsCards.Fresh
	if stats != summary.Total {
		t.Fatalf("stats buckets sum %d, total %d", stats, summary.Total)
	}
}
