package ai

import (
	"encoding/json"
	"strings"

	"example.com/fresh-pantry/backend/internal/models"
)

// parseAnalysis превращает сырой текст модели в AnalysisResult, перебирая
// стратегии по порядку: чистый JSON, JSON внутри markdown или прозы,
// эвристика по ключевым словам. Всегда возвращает результат.
func parseAnalysis(text string) models.AnalysisResult {
	var direct map[string]interface{}
	if err := json.Unmarshal([]byte(text), &direct); err == nil {
		return NormalizeAnalysis(direct)
	}

	if embedded, ok := extractJSON(text); ok {
		var parsed map[string]interface{}
		if err := json.Unmarshal([]byte(embedded), &parsed); err == nil {
			return NormalizeAnalysis(parsed)
		}
	}

	return heuristicAnalysis(text)
}

// parseRecipes извлекает список рецептов из текста модели. Эвристики для
// рецептов нет: если JSON не нашелся, второй результат false и вызывающий
// код подставляет встроенные рецепты.
func parseRecipes(text string) ([]models.RecipeSuggestion, bool) {
	var direct interface{}
	if err := json.Unmarshal([]byte(text), &direct); err == nil {
		if recipes := NormalizeRecipes(direct); len(recipes) > 0 {
			return recipes, true
		}
	}

	if embedded, ok := extractJSON(text); ok {
		var parsed interface{}
		if err := json.Unmarshal([]byte(embedded), &parsed); err == nil {
			if recipes := NormalizeRecipes(parsed); len(recipes) > 0 {
				return recipes, true
			}
		}
	}

	return nil, false
}

// extractJSON вырезает JSON-объект или массив из текста, в котором модель
// обернула его в markdown-ограждение или сопроводительную прозу.
func extractJSON(text string) (string, bool) {
	cleaned := strings.TrimSpace(text)

	if strings.Contains(cleaned, "```") {
		if start := strings.Index(cleaned, "```"); start >= 0 {
			rest := cleaned[start+3:]
			if newline := strings.Index(rest, "\n"); newline >= 0 {
				rest = rest[newline+1:]
			}
			if end := strings.Index(rest, "```"); end >= 0 {
				cleaned = strings.TrimSpace(rest[:end])
			}
		}
	}

	objStart := strings.Index(cleaned, "{")
	arrStart := strings.Index(cleaned, "[")

	start, closing := objStart, "}"
	if objStart < 0 || (arrStart >= 0 && arrStart < objStart) {
		start, closing = arrStart, "]"
	}

	if start < 0 {
		return "", false
	}

	end := strings.LastIndex(cleaned, closing)
	if end <= start {
		return "", false
	}

	return cleaned[start : end+1], true
}
