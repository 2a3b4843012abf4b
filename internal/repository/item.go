package repository

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"example.com/fresh-pantry/backend/internal/database"
	"example.com/fresh-pantry/backend/internal/models"
)

// ItemSubscriber получает полный снимок инвентаря пользователя после
// каждой записи.
type ItemSubscriber func(userID uuid.UUID, items []models.PantryItem)

type ItemRepository struct {
	collection *mongo.Collection

	mu          sync.RWMutex
	subscribers map[int]ItemSubscriber
	nextSubID   int

	now func() time.Time
}

type pantryItemDoc struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty"`
	UserID     string                 `bson:"user_id"`
	Name       string                 `bson:"name"`
	Category   string                 `bson:"category"`
	ExpiryDate time.Time              `bson:"expiry_date"`
	AddedDate  time.Time              `bson:"added_date"`
	Notes      string                 `bson:"notes,omitempty"`
	Analysis   *models.AnalysisResult `bson:"analysis,omitempty"`
	ImageURL   string                 `bson:"image_url,omitempty"`
}

// ItemPatch описывает частичное обновление продукта. Нулевые указатели означают
// "поле не трогать".
type ItemPatch struct {
	Name       *string
	Category   *string
	ExpiryDate *time.Time
	Notes      *string
	ImageURL   *string
	Analysis   *models.AnalysisResult
}

// NewItemRepository создает репозиторий инвентаря.
func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{
		collection:  db.Collection(database.CollectionPantryItems),
		subscribers: make(map[int]ItemSubscriber),
		now:         time.Now,
	}
}

// Subscribe регистрирует подписчика на изменения инвентаря и возвращает
// функцию отписки. Подписчик вызывается синхронно после каждой записи с
// полным снимком инвентаря затронутого пользователя.
func (r *ItemRepository) Subscribe(fn ItemSubscriber) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextSubID
	r.nextSubID++
	r.subscribers[id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subscribers, id)
	}
}

// Add добавляет продукт в инвентарь пользователя.
func (r *ItemRepository) Add(ctx context.Context, item models.PantryItem) (models.PantryItem, error) {
	if strings.TrimSpace(item.Name) == "" {
		return models.PantryItem{}, ErrInvalid
	}

	category := strings.TrimSpace(item.Category)
	if category == "" {
		category = models.DefaultCategory
	}

	addedDate := item.AddedDate
	if addedDate.IsZero() {
		addedDate = r.now().UTC()
	}

	doc := pantryItemDoc{
		UserID:     item.UserID.String(),
		Name:       strings.TrimSpace(item.Name),
		Category:   category,
		ExpiryDate: item.ExpiryDate,
		AddedDate:  addedDate,
		Notes:      item.Notes,
		Analysis:   item.Analysis,
		ImageURL:   item.ImageURL,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return models.PantryItem{}, err
	}

	doc.ID = result.InsertedID.(primitive.ObjectID)
	r.notifyChange(ctx, item.UserID)

	return r.toModel(doc), nil
}

// Update изменяет продукт пользователя по частичному патчу.
func (r *ItemRepository) Update(ctx context.Context, userID uuid.UUID, itemID string, patch ItemPatch) (models.PantryItem, error) {
	objectID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return models.PantryItem{}, ErrInvalid
	}

	set := bson.M{}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return models.PantryItem{}, ErrInvalid
		}
		set["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Category != nil {
		category := strings.TrimSpace(*patch.Category)
		if category == "" {
			category = models.DefaultCategory
		}
		set["category"] = category
	}
	if patch.ExpiryDate != nil {
		set["expiry_date"] = *patch.ExpiryDate
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}
	if patch.ImageURL != nil {
		set["image_url"] = *patch.ImageURL
	}
	if patch.Analysis != nil {
		set["analysis"] = *patch.Analysis
	}

	if len(set) == 0 {
		return models.PantryItem{}, ErrInvalid
	}

	var doc pantryItemDoc
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objectID, "user_id": userID.String()},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.PantryItem{}, ErrNotFound
		}
		return models.PantryItem{}, err
	}

	r.notifyChange(ctx, userID)

	return r.toModel(doc), nil
}

// Delete удаляет продукт пользователя.
func (r *ItemRepository) Delete(ctx context.Context, userID uuid.UUID, itemID string) error {
	objectID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return ErrInvalid
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID, "user_id": userID.String()})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	r.notifyChange(ctx, userID)

	return nil
}

// GetByID возвращает продукт пользователя.
func (r *ItemRepository) GetByID(ctx context.Context, userID uuid.UUID, itemID string) (models.PantryItem, error) {
	objectID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return models.PantryItem{}, ErrInvalid
	}

	var doc pantryItemDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID, "user_id": userID.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.PantryItem{}, ErrNotFound
		}
		return models.PantryItem{}, err
	}

	return r.toModel(doc), nil
}

// ListByUser возвращает инвентарь пользователя от новых к старым.
func (r *ItemRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PantryItem, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"user_id": userID.String()},
		options.Find().SetSort(bson.D{{Key: "added_date", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.PantryItem, 0)
	for cursor.Next(ctx) {
		var doc pantryItemDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, r.toModel(doc))
	}

	return items, cursor.Err()
}

// notifyChange перечитывает инвентарь пользователя и раздает снимок всем
// подписчикам. Ошибка чтения глушит рассылку: подписчики получат снимок на
// следующей записи.
func (r *ItemRepository) notifyChange(ctx context.Context, userID uuid.UUID) {
	r.mu.RLock()
	if len(r.subscribers) == 0 {
		r.mu.RUnlock()
		return
	}
	subscribers := make([]ItemSubscriber, 0, len(r.subscribers))
	for _, fn := range r.subscribers {
		subscribers = append(subscribers, fn)
	}
	r.mu.RUnlock()

	items, err := r.ListByUser(ctx, userID)
	if err != nil {
		return
	}

	for _, fn := range subscribers {
		fn(userID, items)
	}
}

func (r *ItemRepository) toModel(doc pantryItemDoc) models.PantryItem {
	userID, _ := uuid.Parse(doc.UserID)

	return models.PantryItem{
		ID:         doc.ID.Hex(),
		UserID:     userID,
		Name:       doc.Name,
		Category:   doc.Category,
		DaysLeft:   daysLeftFrom(doc.ExpiryDate, r.now()),
		ExpiryDate: doc.ExpiryDate,
		AddedDate:  doc.AddedDate,
		Notes:      doc.Notes,
		Analysis:   doc.Analysis,
		ImageURL:   doc.ImageURL,
	}
}

// daysLeftFrom пересчитывает остаток дней из даты истечения срока. Дата
// истечения первична, отрицательных значений не бывает.
func daysLeftFrom(expiry, now time.Time) int {
	diff := expiry.Sub(now)
	if diff <= 0 {
		return 0
	}

	return int(math.Ceil(diff.Hours() / 24))
}
