package database

import (
	"context"
	"fmt"
	"time"

	"joyeria-api/internal/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SeedProducts inserts the default catalog when the products collection is
// empty, so a fresh install serves something to browse. It is a no-op when
// any product already exists.
func SeedProducts(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	collection := db.Collection("products")

	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	defaults := []struct {
		name        string
		price       float64
		description string
		image       string
	}{
		{"Anillo de Plata", 120, "Anillo de plata 925 con zirconia.", "/images/anillo.jpg"},
		{"Collar de Oro", 350, "Collar de oro 18k con dije de cruz.", "/images/collargold.jpg"},
		{"Aretes de Perla", 90, "Aretes con perlas naturales.", "/images/aretes.jpg"},
		{"Pulsera", 150, "Pulsera de acero quirúrgico plateada, que se le pueden agregar CHARMS.", "/images/pulsera.jpg"},
	}

	docs := make([]interface{}, 0, len(defaults))
	for _, d := range defaults {
		docs = append(docs, domain.Product{
			ID:          uuid.NewString(),
			Name:        d.name,
			Price:       d.price,
			Description: d.description,
			ImageURL:    d.image,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if _, err := collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	logger.Info("Seeded default catalog", zap.Int("products", len(docs)))
	return nil
}
