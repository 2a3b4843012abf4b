package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"example.com/fresh-pantry/backend/internal/models"
)

// ErrMiss возвращается, когда для пользователя нет сохраненной партии.
var ErrMiss = errors.New("recipe batch not found")

// RecipeCache хранит последнюю партию рецептов пользователя в Redis.
// Партии эфемерны: новая генерация целиком заменяет предыдущую, по
// истечении TTL партия исчезает.
type RecipeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRecipeCache создает кэш рецептов с заданным временем жизни партии.
func NewRecipeCache(client *redis.Client, ttl time.Duration) *RecipeCache {
	return &RecipeCache{client: client, ttl: ttl}
}

// SaveBatch сохраняет партию, заменяя предыдущую.
func (c *RecipeCache) SaveBatch(ctx context.Context, userID uuid.UUID, batch models.RecipeBatch) error {
	payload, err := json.Marshal(batch)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, batchKey(userID), payload, c.ttl).Err()
}

// LatestBatch возвращает последнюю сохраненную партию пользователя.
func (c *RecipeCache) LatestBatch(ctx context.Context, userID uuid.UUID) (models.RecipeBatch, error) {
	payload, err := c.client.Get(ctx, batchKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.RecipeBatch{}, ErrMiss
		}
		return models.RecipeBatch{}, err
	}

	var batch models.RecipeBatch
	if err := json.Unmarshal(payload, &batch); err != nil {
		return models.RecipeBatch{}, err
	}

	return batch, nil
}

func batchKey(userID uuid.UUID) string {
	return fmt.Sprintf("recipes:latest:%s", userID)
}
