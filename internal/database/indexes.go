package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const indexTimeout = 5 * time.Second

// EnsureIndexes creates the indexes every collection relies on. Creation is
// idempotent, so this runs on every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	for collection, models := range collectionIndexes() {
		names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", collection, err)
		}
		logger.Info("Indexes ensured",
			zap.String("collection", collection),
			zap.Strings("indexes", names),
		)
	}

	return nil
}

func collectionIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		"users": {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("email_unique").SetUnique(true),
			},
		},
		"refresh_tokens": {
			{
				Keys:    bson.D{{Key: "token", Value: 1}},
				Options: options.Index().SetName("token_unique").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "expires_at", Value: 1}},
				Options: options.Index().SetName("expires_at_ttl").SetExpireAfterSeconds(0),
			},
		},
		"orders": {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("user_id_created_at"),
			},
		},
		"comments": {
			{
				Keys:    bson.D{{Key: "product_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("product_id_created_at"),
			},
		},
		"products": {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetName("name_index"),
			},
		},
	}
}
