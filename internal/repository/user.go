package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"example.com/fresh-pantry/backend/internal/database"
	"example.com/fresh-pantry/backend/internal/models"
)

type UserRepository struct {
	collection *mongo.Collection
}

type userDoc struct {
	ID                   string    `bson:"_id"`
	Email                string    `bson:"email"`
	PasswordHash         string    `bson:"password_hash"`
	Name                 *string   `bson:"name,omitempty"`
	NotificationsEnabled bool      `bson:"notifications_enabled"`
	CreatedAt            time.Time `bson:"created_at"`
	UpdatedAt            time.Time `bson:"updated_at"`
}

// NewUserRepository создает репозиторий пользователей.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection(database.CollectionUsers)}
}

// Create создает пользователя. Уведомления включены по умолчанию.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string, name *string) (models.User, error) {
	now := time.Now().UTC()
	doc := userDoc{
		ID:                   uuid.New().String(),
		Email:                email,
		PasswordHash:         passwordHash,
		Name:                 name,
		NotificationsEnabled: true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrConflict
		}
		return models.User{}, err
	}

	return doc.toModel()
}

// GetByEmail возвращает пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

// SetNotificationsEnabled переключает доставку уведомлений пользователю.
func (r *UserRepository) SetNotificationsEnabled(ctx context.Context, id uuid.UUID, enabled bool) (models.User, error) {
	update := bson.M{"$set": bson.M{
		"notifications_enabled": enabled,
		"updated_at":            time.Now().UTC(),
	}}

	var doc userDoc
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id.String()}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}

	return doc.toModel()
}

// ListUsers возвращает пользователей от новых к старым. Используется в
// админке.
func (r *UserRepository) ListUsers(ctx context.Context, limit int64) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	for cursor.Next(ctx) {
		var doc userDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		user, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, cursor.Err()
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (models.User, error) {
	var doc userDoc
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}

	return doc.toModel()
}

func (d userDoc) toModel() (models.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return models.User{}, err
	}

	return models.User{
		ID:                   id,
		Email:                d.Email,
		PasswordHash:         d.PasswordHash,
		Name:                 d.Name,
		NotificationsEnabled: d.NotificationsEnabled,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}, nil
}
