package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"example.com/fresh-pantry/backend/internal/models"
)

type Service struct {
	client Client
}

// NewService создает сервис работы с AI-клиентом.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// AnalyzeFood отправляет фото продукта модели и разбирает ответ цепочкой
// стратегий. Ошибку возвращает только при отказе транспорта: любой текст
// от модели превращается в результат, в крайнем случае эвристикой.
func (s *Service) AnalyzeFood(ctx context.Context, input AnalyzeFoodInput) (models.AnalysisResult, string, []byte, error) {
	prompt := buildAnalyzeFoodPrompt(input.Hint)

	messages := []Message{
		{Role: "system", Content: analyzeSystemPrompt},
		{
			Role:    "user",
			Content: prompt,
			Image: &ImageData{
				MimeType: input.MimeType,
				Data:     input.Image,
			},
		},
	}

	content, raw, err := s.client.Chat(ctx, messages)
	if err != nil {
		return models.AnalysisResult{}, prompt, raw, err
	}

	return parseAnalysis(content), prompt, raw, nil
}

// GenerateRecipes просит модель составить рецепты из переданного инвентаря.
// Продукты с истекающим сроком помечены и должны попасть в рецепты с
// высоким приоритетом. Если ответ не разобрался, отдаются встроенные
// рецепты с Source=fallback.
func (s *Service) GenerateRecipes(ctx context.Context, items []RecipeItem) (models.RecipeBatch, string, []byte, error) {
	prompt, err := buildRecipesPrompt(items)
	if err != nil {
		return models.RecipeBatch{}, "", nil, err
	}

	messages := []Message{
		{Role: "system", Content: recipesSystemPrompt},
		{Role: "user", Content: prompt},
	}

	content, raw, err := s.client.Chat(ctx, messages)
	if err != nil {
		return models.RecipeBatch{}, prompt, raw, err
	}

	recipes, ok := parseRecipes(content)
	if !ok {
		batch := ExampleRecipes()
		return batch, prompt, raw, nil
	}

	return models.RecipeBatch{
		Recipes:     recipes,
		Source:      models.BatchSourceAI,
		GeneratedAt: time.Now().UTC(),
	}, prompt, raw, nil
}

// ListModels возвращает список моделей провайдера.
func (s *Service) ListModels(ctx context.Context) ([]ModelInfo, error) {
	return s.client.ListModels(ctx)
}

const analyzeSystemPrompt = "You are a food freshness inspector. " +
	"Look at the photo and respond with JSON only, without extra text. " +
	`Use this shape: {"foodType": string, "freshness": "fresh"|"ripe"|"overripe"|"spoiled", ` +
	`"safeToConsume": bool, "daysLeft": int, "confidence": int 0-100, ` +
	`"recommendation": string, "storageTip": string, "details": string}.`

const recipesSystemPrompt = "You are a practical home cook. " +
	"Respond with JSON only, without extra text. " +
	`Use this shape: {"recipes": [{"id": int, "name": string, "description": string, ` +
	`"cookTime": string, "difficulty": "Easy"|"Medium"|"Hard", ` +
	`"ingredients": [string], "instructions": [string], "priority": "high"|"medium"|"low"}]}.`

func buildAnalyzeFoodPrompt(hint string) string {
	var builder strings.Builder

	builder.WriteString("Analyze the food item in the attached photo.\n")
	builder.WriteString("Estimate its freshness, whether it is safe to eat and how many days remain before it spoils.\n")
	builder.WriteString("Be conservative: when in doubt, choose the worse freshness tier.\n")

	if trimmed := strings.TrimSpace(hint); trimmed != "" {
		builder.WriteString(fmt.Sprintf("The user says the item is: %s.\n", trimmed))
	}

	return builder.String()
}

func buildRecipesPrompt(items []RecipeItem) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("recipe generation needs at least one pantry item")
	}

	inventory, err := json.Marshal(items)
	if err != nil {
		return "", err
	}

	var builder strings.Builder

	builder.WriteString("Suggest up to 5 recipes using the pantry inventory below.\n")
	builder.WriteString("Items marked urgent expire within two days. Build recipes around them first and give those recipes priority \"high\".\n")
	builder.WriteString("Prefer recipes that use several inventory items at once. Common staples like oil, salt and flour may be assumed.\n\n")
	builder.WriteString("Inventory:\n")
	builder.Write(inventory)
	builder.WriteString("\n")

	return builder.String(), nil
}
