package ai

// AnalyzeFoodInput содержит входные данные одного сканирования.
type AnalyzeFoodInput struct {
	Image    []byte
	MimeType string
	Hint     string `json:"hint,omitempty"`
}

// RecipeItem описывает продукт инвентаря в запросе генерации рецептов.
// Urgent выставляется для продуктов с daysLeft <= 2: такие продукты
// модель просят израсходовать в первую очередь.
type RecipeItem struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	DaysLeft int    `json:"days_left"`
	Urgent   bool   `json:"urgent"`
}

// UrgencyThreshold задает порог срочности продукта в контексте рецептов.
const UrgencyThreshold = 2
