package ai

import (
	"testing"

	"example.com/fresh-pantry/backend/internal/models"
)

// TestNormalizeAnalysisEmpty проверяет, что пустой объект дает полностью
// заполненный результат с фолбэками.
func TestNormalizeAnalysisEmpty(t *testing.T) {
	result := NormalizeAnalysis(map[string]interface{}{})

	if result.Freshness != models.FreshnessFresh {
		t.Fatalf("expected fresh, got %s", result.Freshness)
	}
	if result.Confidence != 85 {
		t.Fatalf("expected confidence 85, got %d", result.Confidence)
	}
	if result.DaysLeft != 5 {
		t.Fatalf("expected daysLeft 5, got %d", result.DaysLeft)
	}
	if !result.SafeToConsume {
		t.Fatal("expected safeToConsume true")
	}
	if result.FoodType != "Unknown food" {
		t.Fatalf("unexpected foodType %q", result.FoodType)
	}
	if result.Recommendation == "" || result.StorageTip == "" || result.Details == "" {
		t.Fatal("text fields must not be empty")
	}
}

// TestNormalizeAnalysisClamps проверяет зажим числовых полей в диапазоны.
func TestNormalizeAnalysisClamps(t *testing.T) {
	cases := []struct {
		name       string
		raw        map[string]interface{}
		confidence int
		daysLeft   int
	}{
		{"confidence above range", map[string]interface{}{"confidence": float64(150)}, 100, 5},
		{"confidence below range", map[string]interface{}{"confidence": float64(-5)}, 0, 5},
		{"confidence non-numeric", map[string]interface{}{"confidence": "loads"}, 0, 5},
		{"confidence numeric string", map[string]interface{}{"confidence": "70"}, 70, 5},
		{"daysLeft negative", map[string]interface{}{"daysLeft": float64(-3)}, 85, 0},
		{"daysLeft non-numeric", map[string]interface{}{"daysLeft": true}, 85, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := NormalizeAnalysis(tc.raw)
			if result.Confidence != tc.confidence {
				t.Fatalf("confidence: expected %d, got %d", tc.confidence, result.Confidence)
			}
			if result.DaysLeft != tc.daysLeft {
				t.Fatalf("daysLeft: expected %d, got %d", tc.daysLeft, result.DaysLeft)
			}
		})
	}
}

// TestNormalizeAnalysisFreshness проверяет приведение категории свежести и
// дефолтный daysLeft для каждой категории.
func TestNormalizeAnalysisFreshness(t *testing.T) {
	cases := []struct {
		raw       string
		freshness models.Freshness
		daysLeft  int
	}{
		{"fresh", models.FreshnessFresh, 5},
		{"RIPE", models.FreshnessRipe, 3},
		{" overripe ", models.FreshnessOverripe, 1},
		{"spoiled", models.FreshnessSpoiled, 0},
		{"rotten", models.FreshnessFresh, 5},
		{"", models.FreshnessFresh, 5},
	}

	for _, tc := range cases {
		result := NormalizeAnalysis(map[string]interface{}{"freshness": tc.raw})
		if result.Freshness != tc.freshness {
			t.Errorf("%q: expected %s, got %s", tc.raw, tc.freshness, result.Freshness)
		}
		if result.DaysLeft != tc.daysLeft {
			t.Errorf("%q: expected daysLeft %d, got %d", tc.raw, tc.daysLeft, result.DaysLeft)
		}
	}
}

// TestNormalizeRecipesDefaults проверяет фолбэки одного пустого рецепта.
func TestNormalizeRecipesDefaults(t *testing.T) {
	recipes := NormalizeRecipes(map[string]interface{}{
		"recipes": []interface{}{map[string]interface{}{}},
	})

	if len(recipes) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(recipes))
	}

	recipe := recipes[0]
	if recipe.ID != 1 {
		t.Fatalf("expected ordinal id 1, got %d", recipe.ID)
	}
	if recipe.Difficulty != models.DifficultyMedium {
		t.Fatalf("expected Medium, got %s", recipe.Difficulty)
	}
	if recipe.Priority != models.RecipePriorityMedium {
		t.Fatalf("expected medium priority, got %s", recipe.Priority)
	}
	if recipe.Ingredients == nil || len(recipe.Ingredients) != 0 {
		t.Fatalf("expected empty ingredients, got %v", recipe.Ingredients)
	}
	if recipe.Instructions == nil || len(recipe.Instructions) != 0 {
		t.Fatalf("expected empty instructions, got %v", recipe.Instructions)
	}
	if recipe.Name != "Untitled Recipe" {
		t.Fatalf("unexpected name %q", recipe.Name)
	}
}

// TestNormalizeRecipesShapes проверяет оба принимаемых формата и пропуск
// нечитаемых элементов.
func TestNormalizeRecipesShapes(t *testing.T) {
	bare := NormalizeRecipes([]interface{}{
		map[string]interface{}{"name": "Soup"},
		"garbage",
		map[string]interface{}{"name": "Salad", "id": float64(7)},
	})

	if len(bare) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(bare))
	}
	if bare[0].ID != 1 || bare[0].Name != "Soup" {
		t.Fatalf("unexpected first recipe %+v", bare[0])
	}
	if bare[1].ID != 7 {
		t.Fatalf("expected explicit id 7, got %d", bare[1].ID)
	}

	if got := NormalizeRecipes("not json at all"); len(got) != 0 {
		t.Fatalf("expected no recipes, got %d", len(got))
	}
}

// TestNormalizeRecipesListCoercion проверяет отбрасывание нестроковых
// элементов списков.
func TestNormalizeRecipesListCoercion(t *testing.T) {
	recipes := NormalizeRecipes(map[string]interface{}{
		"recipes": []interface{}{map[string]interface{}{
			"ingredients":  []interface{}{"eggs", float64(3), " milk "},
			"instructions": "stir well",
		}},
	})

	if len(recipes) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(recipes))
	}

	ingredients := recipes[0].Ingredients
	if len(ingredients) != 2 || ingredients[0] != "eggs" || ingredients[1] != "milk" {
		t.Fatalf("unexpected ingredients %v", ingredients)
	}
	if len(recipes[0].Instructions) != 0 {
		t.Fatalf("expected empty instructions, got %v", recipes[0].Instructions)
	}
}
