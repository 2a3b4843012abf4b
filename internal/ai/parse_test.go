package ai

import (
	"testing"

	"example.com/fresh-pantry/backend/internal/models"
)

// TestParseAnalysisStrictJSON проверяет первую стратегию: чистый JSON.
func TestParseAnalysisStrictJSON(t *testing.T) {
	result := parseAnalysis(`{"freshness":"ripe","daysLeft":2,"confidence":90,"foodType":"Banana"}`)

	if result.Freshness != models.FreshnessRipe {
		t.Fatalf("expected ripe, got %s", result.Freshness)
	}
	if result.DaysLeft != 2 || result.Confidence != 90 {
		t.Fatalf("unexpected numbers: %d days, %d%%", result.DaysLeft, result.Confidence)
	}
	if result.FoodType != "Banana" {
		t.Fatalf("unexpected foodType %q", result.FoodType)
	}
}

// TestParseAnalysisFencedJSON проверяет извлечение JSON из markdown.
func TestParseAnalysisFencedJSON(t *testing.T) {
	text := "Here is the analysis:\n```json\n{\"freshness\": \"overripe\", \"daysLeft\": 1}\n```\nHope it helps."

	result := parseAnalysis(text)
	if result.Freshness != models.FreshnessOverripe {
		t.Fatalf("expected overripe, got %s", result.Freshness)
	}
	if result.DaysLeft != 1 {
		t.Fatalf("expected daysLeft 1, got %d", result.DaysLeft)
	}
}

// TestParseAnalysisHeuristic проверяет последний рубеж: текст без JSON.
func TestParseAnalysisHeuristic(t *testing.T) {
	result := parseAnalysis("The tomato looks moldy, discard it. I am about 70% sure.")

	if result.Freshness != models.FreshnessSpoiled {
		t.Fatalf("expected spoiled, got %s", result.Freshness)
	}
	if result.SafeToConsume {
		t.Fatal("expected safeToConsume false")
	}
	if result.DaysLeft != 0 {
		t.Fatalf("expected daysLeft 0, got %d", result.DaysLeft)
	}
	if result.Confidence != 70 {
		t.Fatalf("expected confidence 70, got %d", result.Confidence)
	}
}

// TestHeuristicAnalysisKeywords проверяет распознавание категорий и чисел.
func TestHeuristicAnalysisKeywords(t *testing.T) {
	cases := []struct {
		text      string
		freshness models.Freshness
		daysLeft  int
	}{
		{"This apple is perfectly fresh and crisp.", models.FreshnessFresh, 5},
		{"The avocado is ripe, eat within 2 days.", models.FreshnessRipe, 2},
		{"Looks overripe but still usable.", models.FreshnessOverripe, 1},
		{"Bananas are past their prime.", models.FreshnessOverripe, 1},
		{"It is rotten, throw it away.", models.FreshnessSpoiled, 0},
	}

	for _, tc := range cases {
		result := heuristicAnalysis(tc.text)
		if result.Freshness != tc.freshness {
			t.Errorf("%q: expected %s, got %s", tc.text, tc.freshness, result.Freshness)
		}
		if result.DaysLeft != tc.daysLeft {
			t.Errorf("%q: expected %d days, got %d", tc.text, tc.daysLeft, result.DaysLeft)
		}
	}
}

// TestHeuristicAnalysisDefaultConfidence проверяет дефолт уверенности.
func TestHeuristicAnalysisDefaultConfidence(t *testing.T) {
	result := heuristicAnalysis("Nothing useful here.")
	if result.Confidence != 85 {
		t.Fatalf("expected confidence 85, got %d", result.Confidence)
	}
	if !result.SafeToConsume {
		t.Fatal("expected safeToConsume true by default")
	}
}

// TestParseRecipesChain проверяет стратегии разбора рецептов.
func TestParseRecipesChain(t *testing.T) {
	strict := `{"recipes":[{"name":"Soup"},{"name":"Salad"}]}`
	recipes, ok := parseRecipes(strict)
	if !ok || len(recipes) != 2 {
		t.Fatalf("strict: expected 2 recipes, got %d (ok=%v)", len(recipes), ok)
	}
	if recipes[1].ID != 2 {
		t.Fatalf("expected ordinal id 2, got %d", recipes[1].ID)
	}

	fenced := "Sure!\n```\n[{\"name\": \"Stew\"}]\n```"
	recipes, ok = parseRecipes(fenced)
	if !ok || len(recipes) != 1 || recipes[0].Name != "Stew" {
		t.Fatalf("fenced: unexpected result %v (ok=%v)", recipes, ok)
	}

	if _, ok = parseRecipes("I could not come up with anything."); ok {
		t.Fatal("expected parse failure for plain prose")
	}
}

// TestExtractJSON проверяет вырезание объекта и массива из прозы.
func TestExtractJSON(t *testing.T) {
	obj, ok := extractJSON(`Result: {"a": 1} done`)
	if !ok || obj != `{"a": 1}` {
		t.Fatalf("unexpected object extraction %q (ok=%v)", obj, ok)
	}

	arr, ok := extractJSON("```json\n[1, 2]\n```")
	if !ok || arr != "[1, 2]" {
		t.Fatalf("unexpected array extraction %q (ok=%v)", arr, ok)
	}

	if _, ok := extractJSON("no structure at all"); ok {
		t.Fatal("expected extraction failure")
	}
}
