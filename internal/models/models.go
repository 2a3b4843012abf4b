package models

import (
	"time"

	"github.com/google/uuid"
)

type Freshness string

type Difficulty string

type RecipePriority string

type BatchSource string

const (
	FreshnessFresh    Freshness = "fresh"
	FreshnessRipe     Freshness = "ripe"
	FreshnessOverripe Freshness = "overripe"
	FreshnessSpoiled  Freshness = "spoiled"

	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"

	RecipePriorityHigh   RecipePriority = "high"
	RecipePriorityMedium RecipePriority = "medium"
	RecipePriorityLow    RecipePriority = "low"

	BatchSourceAI       BatchSource = "ai"
	BatchSourceFallback BatchSource = "fallback"
)

// DefaultCategory используется, когда категория продукта не указана.
const DefaultCategory = "Other"

type User struct {
	ID                   uuid.UUID `json:"id"`
	Email                string    `json:"email"`
	PasswordHash         string    `json:"-"`
	Name                 *string   `json:"name,omitempty"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// PantryItem описывает продукт в инвентаре пользователя. Источником истины
// по сроку годности служит ExpiryDate; DaysLeft пересчитывается при каждом
// чтении и не
// бывает отрицательным.
type PantryItem struct {
	ID         string          `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	DaysLeft   int             `json:"days_left"`
	ExpiryDate time.Time       `json:"expiry_date"`
	AddedDate  time.Time       `json:"added_date"`
	Notes      string          `json:"notes,omitempty"`
	Analysis   *AnalysisResult `json:"ai_analysis,omitempty"`
	ImageURL   string          `json:"image_url,omitempty"`
}

// AnalysisResult содержит нормализованный результат AI-анализа свежести.
// Неизменяем после создания; все поля всегда заполнены.
type AnalysisResult struct {
	Freshness      Freshness `json:"freshness" bson:"freshness"`
	SafeToConsume  bool      `json:"safe_to_consume" bson:"safe_to_consume"`
	DaysLeft       int       `json:"days_left" bson:"days_left"`
	Confidence     int       `json:"confidence" bson:"confidence"`
	Recommendation string    `json:"recommendation" bson:"recommendation"`
	FoodType       string    `json:"food_type" bson:"food_type"`
	StorageTip     string    `json:"storage_tip" bson:"storage_tip"`
	Details        string    `json:"details" bson:"details"`
}

type RecipeSuggestion struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	CookTime     string         `json:"cook_time"`
	Difficulty   Difficulty     `json:"difficulty"`
	Ingredients  []string       `json:"ingredients"`
	Instructions []string       `json:"instructions"`
	Priority     RecipePriority `json:"priority"`
}

// RecipeBatch содержит эфемерную партию рецептов. Не сохраняется в основной базе:
// живет в Redis до следующей генерации или истечения TTL.
type RecipeBatch struct {
	Recipes     []RecipeSuggestion `json:"recipes"`
	Source      BatchSource        `json:"source"`
	GeneratedAt time.Time          `json:"generated_at"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}
