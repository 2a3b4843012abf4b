package ai

import (
	"strconv"
	"strings"

	"example.com/fresh-pantry/backend/internal/models"
)

// Фолбэки текстовых полей анализа. Нормализатор тотален: какой бы мусор ни
// пришел от модели, наружу уходит полностью заполненная структура.
const (
	fallbackFoodType       = "Unknown food"
	fallbackRecommendation = "Inspect the item before consuming."
	fallbackStorageTip     = "Store in a cool, dry place."
	fallbackDetails        = "No additional details provided."
	fallbackConfidence     = 85

	fallbackRecipeName        = "Untitled Recipe"
	fallbackRecipeDescription = "No description provided."
	fallbackRecipeCookTime    = "Unknown"
)

// tierDefaultDays задает daysLeft по умолчанию, когда модель его не вернула.
var tierDefaultDays = map[models.Freshness]int{
	models.FreshnessSpoiled:  0,
	models.FreshnessOverripe: 1,
	models.FreshnessRipe:     3,
	models.FreshnessFresh:    5,
}

// NormalizeAnalysis приводит слабо типизированный объект к AnalysisResult.
// Никогда не возвращает ошибку: недостающие и невалидные поля заменяются
// документированными фолбэками, числа зажимаются в допустимые диапазоны.
func NormalizeAnalysis(raw map[string]interface{}) models.AnalysisResult {
	freshness := coerceFreshness(stringField(raw, "freshness", ""))

	daysLeft := tierDefaultDays[freshness]
	if value, present := raw["daysLeft"]; present {
		parsed, _ := parseInt(value)
		daysLeft = max(0, parsed)
	}

	confidence := fallbackConfidence
	if value, present := raw["confidence"]; present {
		parsed, _ := parseInt(value)
		confidence = clampConfidence(parsed)
	}

	safeToConsume := true
	if value, present := raw["safeToConsume"]; present {
		safeToConsume = parseBool(value, true)
	}

	return models.AnalysisResult{
		Freshness:      freshness,
		SafeToConsume:  safeToConsume,
		DaysLeft:       daysLeft,
		Confidence:     confidence,
		Recommendation: stringField(raw, "recommendation", fallbackRecommendation),
		FoodType:       stringField(raw, "foodType", fallbackFoodType),
		StorageTip:     stringField(raw, "storageTip", fallbackStorageTip),
		Details:        stringField(raw, "details", fallbackDetails),
	}
}

// NormalizeRecipes приводит ответ модели к списку рецептов. Принимает как
// объект {"recipes": [...]}, так и голый массив. Тотальна: нечитаемые
// элементы пропускаются, отсутствующие id заменяются порядковыми с единицы.
func NormalizeRecipes(raw interface{}) []models.RecipeSuggestion {
	entries := recipeEntries(raw)

	recipes := make([]models.RecipeSuggestion, 0, len(entries))
	for _, entry := range entries {
		fields, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}

		recipe := models.RecipeSuggestion{
			Name:         stringField(fields, "name", fallbackRecipeName),
			Description:  stringField(fields, "description", fallbackRecipeDescription),
			CookTime:     stringField(fields, "cookTime", fallbackRecipeCookTime),
			Difficulty:   coerceDifficulty(stringField(fields, "difficulty", "")),
			Ingredients:  stringList(fields["ingredients"]),
			Instructions: stringList(fields["instructions"]),
			Priority:     coercePriority(stringField(fields, "priority", "")),
		}

		if id, ok := parseInt(fields["id"]); ok && id > 0 {
			recipe.ID = id
		} else {
			recipe.ID = len(recipes) + 1
		}

		recipes = append(recipes, recipe)
	}

	return recipes
}

func recipeEntries(raw interface{}) []interface{} {
	switch value := raw.(type) {
	case map[string]interface{}:
		if list, ok := value["recipes"].([]interface{}); ok {
			return list
		}
		return nil
	case []interface{}:
		return value
	default:
		return nil
	}
}

func coerceFreshness(value string) models.Freshness {
	switch models.Freshness(strings.ToLower(strings.TrimSpace(value))) {
	case models.FreshnessRipe:
		return models.FreshnessRipe
	case models.FreshnessOverripe:
		return models.FreshnessOverripe
	case models.FreshnessSpoiled:
		return models.FreshnessSpoiled
	default:
		return models.FreshnessFresh
	}
}

func coerceDifficulty(value string) models.Difficulty {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "easy":
		return models.DifficultyEasy
	case "hard":
		return models.DifficultyHard
	default:
		return models.DifficultyMedium
	}
}

func coercePriority(value string) models.RecipePriority {
	switch models.RecipePriority(strings.ToLower(strings.TrimSpace(value))) {
	case models.RecipePriorityHigh:
		return models.RecipePriorityHigh
	case models.RecipePriorityLow:
		return models.RecipePriorityLow
	default:
		return models.RecipePriorityMedium
	}
}

func stringField(raw map[string]interface{}, key, fallback string) string {
	value, ok := raw[key].(string)
	if !ok {
		return fallback
	}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}

	return trimmed
}

func stringList(raw interface{}) []string {
	list, ok := raw.([]interface{})
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(list))
	for _, entry := range list {
		text, ok := entry.(string)
		if !ok {
			continue
		}
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}

// parseInt распознает числа во всех формах, в которых их присылает модель:
// JSON-числа, строки, целые. Нечисловой вход считается нулем.
func parseInt(raw interface{}) (int, bool) {
	switch value := raw.(type) {
	case float64:
		return int(value), true
	case int:
		return value, true
	case int64:
		return int(value), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func parseBool(raw interface{}, fallback bool) bool {
	switch value := raw.(type) {
	case bool:
		return value
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fallback
		}
		return parsed
	default:
		return fallback
	}
}

func clampConfidence(value int) int {
	return min(100, max(0, value))
}
