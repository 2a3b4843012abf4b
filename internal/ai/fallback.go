package ai

import (
	"time"

	"example.com/fresh-pantry/backend/internal/models"
)

// ExampleAnalysis возвращает встроенный результат анализа. Используется,
// когда провайдер недоступен или его ответ не удалось разобрать даже
// эвристикой. Клиент всегда получает корректную структуру.
func ExampleAnalysis() models.AnalysisResult {
	return models.AnalysisResult{
		Freshness:      models.FreshnessFresh,
		SafeToConsume:  true,
		DaysLeft:       5,
		Confidence:     50,
		Recommendation: "We could not analyze this item right now. Check it manually before use.",
		FoodType:       fallbackFoodType,
		StorageTip:     fallbackStorageTip,
		Details:        "Automatic analysis was unavailable, so this is a conservative estimate.",
	}
}

// ExampleRecipes возвращает встроенную партию рецептов на случай отказа
// провайдера. Рецепты нарочно универсальные и не зависят от инвентаря.
func ExampleRecipes() models.RecipeBatch {
	return models.RecipeBatch{
		Recipes: []models.RecipeSuggestion{
			{
				ID:          1,
				Name:        "Everything Vegetable Soup",
				Description: "A forgiving pot that absorbs whatever produce needs using up first.",
				CookTime:    "40 min",
				Difficulty:  models.DifficultyEasy,
				Ingredients: []string{
					"Any aging vegetables",
					"1 onion",
					"2 cloves garlic",
					"1.5 l vegetable stock",
					"Salt and pepper",
				},
				Instructions: []string{
					"Dice the onion and garlic and sweat them in a large pot.",
					"Chop the remaining vegetables and add the firmest ones first.",
					"Pour in the stock, simmer for 25 minutes and season to taste.",
				},
				Priority: models.RecipePriorityHigh,
			},
			{
				ID:          2,
				Name:        "Clean-Out-The-Fridge Frittata",
				Description: "Eggs bind leftover vegetables, cheese and herbs into a quick meal.",
				CookTime:    "25 min",
				Difficulty:  models.DifficultyEasy,
				Ingredients: []string{
					"6 eggs",
					"Leftover cooked or raw vegetables",
					"50 g cheese",
					"Butter or oil",
				},
				Instructions: []string{
					"Whisk the eggs with salt and pepper.",
					"Saute the vegetables in an oven-safe pan until tender.",
					"Pour the eggs over, top with cheese and finish under the grill.",
				},
				Priority: models.RecipePriorityMedium,
			},
			{
				ID:          3,
				Name:        "Ripe Fruit Smoothie",
				Description: "Overripe fruit is at its sweetest. Blend it before it turns.",
				CookTime:    "5 min",
				Difficulty:  models.DifficultyEasy,
				Ingredients: []string{
					"Any ripe or overripe fruit",
					"200 ml yogurt or milk",
					"1 tbsp honey",
				},
				Instructions: []string{
					"Peel and roughly chop the fruit.",
					"Blend everything until smooth and serve cold.",
				},
				Priority: models.RecipePriorityMedium,
			},
		},
		Source:      models.BatchSourceFallback,
		GeneratedAt: time.Now().UTC(),
	}
}
