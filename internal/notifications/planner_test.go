package notifications

import (
	"reflect"
	"testing"
)

// TestBuildPlanScenario проверяет раскладку смешанного инвентаря по корзинам.
func TestBuildPlanScenario(t *testing.T) {
	items := []Item{
		{Name: "Milk", DaysLeft: 0},
		{Name: "Spinach", DaysLeft: 2},
		{Name: "Potatoes", DaysLeft: 10},
	}

	plan := BuildPlan(items)

	if plan.Expired.Count != 1 || plan.Expired.Items[0] != "Milk" {
		t.Fatalf("unexpected expired bucket %+v", plan.Expired)
	}
	if plan.Expiring.Count != 1 || plan.Expiring.Items[0] != "Spinach" {
		t.Fatalf("unexpected expiring bucket %+v", plan.Expiring)
	}
	if plan.Fresh.Count != 1 || plan.Fresh.Items[0] != "Potatoes" {
		t.Fatalf("unexpected fresh bucket %+v", plan.Fresh)
	}
	if plan.Summary.Total != 3 || plan.Summary.NeedsAttention != 2 {
		t.Fatalf("unexpected summary %+v", plan.Summary)
	}
	if plan.Summary.HealthScore != 33 {
		t.Fatalf("expected health score 33, got %d", plan.Summary.HealthScore)
	}
}

// TestBuildPlanEmpty проверяет план для пустого инвентаря.
func TestBuildPlanEmpty(t *testing.T) {
	plan := BuildPlan(nil)

	if plan.Summary.Total != 0 || plan.Summary.NeedsAttention != 0 {
		t.Fatalf("unexpected summary %+v", plan.Summary)
	}
	if plan.Summary.HealthScore != 100 {
		t.Fatalf("expected health score 100, got %d", plan.Summary.HealthScore)
	}
	if plan.Expired.Count+plan.Expiring.Count+plan.Fresh.Count != 0 {
		t.Fatal("expected all buckets empty")
	}
}

// TestBuildPlanIdempotent проверяет, что повторный вызов на том же снимке
// дает структурно идентичный план.
func TestBuildPlanIdempotent(t *testing.T) {
	items := []Item{
		{Name: "Yogurt", DaysLeft: 1},
		{Name: "Apples", DaysLeft: 6},
	}

	first := BuildPlan(items)
	second := BuildPlan(items)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("plans differ:\n%+v\n%+v", first, second)
	}
}

// TestBuildPlanPartition проверяет, что каждый продукт попадает ровно в
// одну корзину.
func TestBuildPlanPartition(t *testing.T) {
	items := []Item{
		{Name: "a", DaysLeft: -2},
		{Name: "b", DaysLeft: 0},
		{Name: "c", DaysLeft: 1},
		{Name: "d", DaysLeft: 3},
		{Name: "e", DaysLeft: 4},
		{Name: "f", DaysLeft: 30},
	}

	plan := BuildPlan(items)

	total := plan.Expired.Count + plan.Expiring.Count + plan.Fresh.Count
	if total != len(items) {
		t.Fatalf("buckets sum to %d, expected %d", total, len(items))
	}
	if plan.Expired.Count != 2 || plan.Expiring.Count != 2 || plan.Fresh.Count != 2 {
		t.Fatalf("unexpected split %d/%d/%d",
			plan.Expired.Count, plan.Expiring.Count, plan.Fresh.Count)
	}
}
