package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"example.com/fresh-pantry/backend/internal/database"
)

type AIRepository struct {
	collection *mongo.Collection
}

type AIRequestLog struct {
	UserID          uuid.UUID
	RequestType     string
	Provider        string
	Model           string
	Prompt          string
	ResponsePayload []byte
	Success         bool
	ErrorMessage    *string
}

// AIRequestRecord содержит сохраненный лог AI-запроса.
type AIRequestRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RequestType  string    `json:"request_type"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	Prompt       string    `json:"prompt"`
	Success      bool      `json:"success"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type aiRequestDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"user_id"`
	RequestType  string             `bson:"request_type"`
	Provider     string             `bson:"provider"`
	Model        string             `bson:"model"`
	Prompt       string             `bson:"prompt"`
	Response     string             `bson:"response,omitempty"`
	Success      bool               `bson:"success"`
	ErrorMessage *string            `bson:"error_message,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// NewAIRepository создает репозиторий для AI-запросов.
func NewAIRepository(db *mongo.Database) *AIRepository {
	return &AIRepository{collection: db.Collection(database.CollectionAIRequests)}
}

// LogRequest сохраняет лог AI-запроса.
func (r *AIRepository) LogRequest(ctx context.Context, log AIRequestLog) error {
	doc := aiRequestDoc{
		UserID:       log.UserID.String(),
		RequestType:  log.RequestType,
		Provider:     log.Provider,
		Model:        log.Model,
		Prompt:       log.Prompt,
		Response:     string(log.ResponsePayload),
		Success:      log.Success,
		ErrorMessage: log.ErrorMessage,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

// ListRecent возвращает последние AI-запросы. Используется в админке.
func (r *AIRepository) ListRecent(ctx context.Context, limit int64) ([]AIRequestRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]AIRequestRecord, 0)
	for cursor.Next(ctx) {
		var doc aiRequestDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		records = append(records, AIRequestRecord{
			ID:           doc.ID.Hex(),
			UserID:       doc.UserID,
			RequestType:  doc.RequestType,
			Provider:     doc.Provider,
			Model:        doc.Model,
			Prompt:       doc.Prompt,
			Success:      doc.Success,
			ErrorMessage: doc.ErrorMessage,
			CreatedAt:    doc.CreatedAt,
		})
	}

	return records, cursor.Err()
}
