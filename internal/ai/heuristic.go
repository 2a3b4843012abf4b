package ai

import (
	"regexp"
	"strconv"
	"strings"

	"example.com/fresh-pantry/backend/internal/models"
)

var (
	daysPattern       = regexp.MustCompile(`(\d+)\s*day`)
	confidencePattern = regexp.MustCompile(`(\d+)\s*%`)
)

// heuristicAnalysis извлекает результат из ответа, в котором не нашлось
// JSON. Последний рубеж парсера: ищем ключевые слова и числа прямо в тексте.
func heuristicAnalysis(text string) models.AnalysisResult {
	lowered := strings.ToLower(text)

	freshness := models.FreshnessFresh
	switch {
	case containsAny(lowered, "spoiled", "moldy", "mouldy", "rotten", "expired"):
		freshness = models.FreshnessSpoiled
	case containsAny(lowered, "overripe", "over-ripe", "past prime", "past its prime", "past their prime"):
		freshness = models.FreshnessOverripe
	case containsAny(lowered, "ripe", "peak"):
		freshness = models.FreshnessRipe
	}

	safe := freshness != models.FreshnessSpoiled
	if containsAny(lowered, "not safe", "unsafe", "discard", "throw away", "do not eat") {
		safe = false
	}

	daysLeft := tierDefaultDays[freshness]
	if match := daysPattern.FindStringSubmatch(lowered); match != nil {
		if parsed, err := strconv.Atoi(match[1]); err == nil {
			daysLeft = max(0, parsed)
		}
	}
	if freshness == models.FreshnessSpoiled {
		daysLeft = 0
	}

	confidence := fallbackConfidence
	if match := confidencePattern.FindStringSubmatch(lowered); match != nil {
		if parsed, err := strconv.Atoi(match[1]); err == nil {
			confidence = clampConfidence(parsed)
		}
	}

	recommendation := fallbackRecommendation
	if !safe {
		recommendation = "Discard this item, it is no longer safe to eat."
	}

	return models.AnalysisResult{
		Freshness:      freshness,
		SafeToConsume:  safe,
		DaysLeft:       daysLeft,
		Confidence:     confidence,
		Recommendation: recommendation,
		FoodType:       fallbackFoodType,
		StorageTip:     fallbackStorageTip,
		Details:        summarizeText(text),
	}
}

func containsAny(text string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}

	return false
}

// summarizeText обрезает свободный текст модели до разумного размера,
// чтобы положить его в Details.
func summarizeText(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fallbackDetails
	}

	const limit = 280
	if len(trimmed) <= limit {
		return trimmed
	}

	return strings.TrimSpace(trimmed[:limit]) + "..."
}
