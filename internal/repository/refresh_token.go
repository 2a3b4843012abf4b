package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"example.com/fresh-pantry/backend/internal/database"
	"example.com/fresh-pantry/backend/internal/models"
)

type RefreshTokenRepository struct {
	collection *mongo.Collection
}

type refreshTokenDoc struct {
	ID         string     `bson:"_id"`
	UserID     string     `bson:"user_id"`
	TokenHash  string     `bson:"token_hash"`
	ExpiresAt  time.Time  `bson:"expires_at"`
	CreatedAt  time.Time  `bson:"created_at"`
	RevokedAt  *time.Time `bson:"revoked_at,omitempty"`
	ReplacedBy *string    `bson:"replaced_by,omitempty"`
}

// NewRefreshTokenRepository создает репозиторий refresh-токенов.
func NewRefreshTokenRepository(db *mongo.Database) *RefreshTokenRepository {
	return &RefreshTokenRepository{collection: db.Collection(database.CollectionRefreshTokens)}
}

// Create сохраняет refresh-токен.
func (r *RefreshTokenRepository) Create(ctx context.Context, token models.RefreshToken) error {
	createdAt := token.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	doc := refreshTokenDoc{
		ID:        token.ID.String(),
		UserID:    token.UserID.String(),
		TokenHash: token.TokenHash,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: createdAt,
	}

	_, err := r.collection.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrConflict
	}

	return err
}

// GetByID возвращает refresh-токен по идентификатору.
func (r *RefreshTokenRepository) GetByID(ctx context.Context, id uuid.UUID) (models.RefreshToken, error) {
	var doc refreshTokenDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.RefreshToken{}, ErrNotFound
		}
		return models.RefreshToken{}, err
	}

	return doc.toModel()
}

// Revoke помечает refresh-токен отозванным.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, id uuid.UUID, replacedBy *uuid.UUID) error {
	set := bson.M{"revoked_at": time.Now().UTC()}
	if replacedBy != nil {
		set["replaced_by"] = replacedBy.String()
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id.String(), "revoked_at": bson.M{"$exists": false}},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// Rotate заменяет старый refresh-токен на новый: сначала вставляет новый,
// затем отзывает старый. Если старый уже отозван или не существует,
// вставленный токен удаляется, чтобы ротация не породила осиротевший токен.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, oldID uuid.UUID, newToken models.RefreshToken) error {
	if err := r.Create(ctx, newToken); err != nil {
		return err
	}

	newID := newToken.ID
	if err := r.Revoke(ctx, oldID, &newID); err != nil {
		_, _ = r.collection.DeleteOne(ctx, bson.M{"_id": newToken.ID.String()})
		return err
	}

	return nil
}

func (d refreshTokenDoc) toModel() (models.RefreshToken, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return models.RefreshToken{}, err
	}

	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return models.RefreshToken{}, err
	}

	token := models.RefreshToken{
		ID:        id,
		UserID:    userID,
		TokenHash: d.TokenHash,
		ExpiresAt: d.ExpiresAt,
		CreatedAt: d.CreatedAt,
		RevokedAt: d.RevokedAt,
	}

	if d.ReplacedBy != nil {
		replacedBy, err := uuid.Parse(*d.ReplacedBy)
		if err != nil {
			return models.RefreshToken{}, err
		}
		token.ReplacedBy = &replacedBy
	}

	return token, nil
}
