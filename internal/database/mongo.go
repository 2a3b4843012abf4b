package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"example.com/fresh-pantry/backend/internal/config"
)

// Коллекции базы.
const (
	CollectionUsers         = "users"
	CollectionPantryItems   = "pantry_items"
	CollectionRefreshTokens = "refresh_tokens"
	CollectionAIRequests    = "ai_requests"
)

// Open подключается к MongoDB с ретраями и возвращает клиент и базу.
func Open(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(uint64(cfg.MaxPoolSize))

	var client *mongo.Client
	var err error

	retries := 5
	backoff := time.Second * 1

	for i := 0; i < retries; i++ {
		client, err = mongo.Connect(ctx, opts)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = client.Ping(pingCtx, nil)
			cancel()

			if err == nil {
				db := client.Database(cfg.Database)
				if err := ensureIndexes(ctx, db); err != nil {
					_ = client.Disconnect(ctx)
					return nil, nil, fmt.Errorf("create indexes: %w", err)
				}
				return client, db, nil
			}
		}

		if client != nil {
			_ = client.Disconnect(ctx) // Закрываем старый клиент перед ретраем
		}

		log.Printf("Попытка подключения %d/%d не удалась: %v. Повтор через %v", i+1, retries, err, backoff)

		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}

	return nil, nil, fmt.Errorf("не удалось подключиться к БД после %d попыток: %w", retries, err)
}

// ensureIndexes создает индексы, на которые опираются репозитории.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(CollectionPantryItems).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "added_date", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(CollectionRefreshTokens).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "token_hash", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(CollectionAIRequests).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})

	return err
}
