package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes bootstraps the collection indexes at process start. The unique
// index on carts.productId is what makes the one-item-per-product invariant
// hold under concurrent inserts.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	products := &mongoProductRepository{collection: db.Collection("products")}
	if err := products.CreateIndexes(ctx); err != nil {
		return fmt.Errorf("products: %w", err)
	}

	carts := &mongoCartRepository{collection: db.Collection("carts")}
	if err := carts.CreateIndexes(ctx); err != nil {
		return fmt.Errorf("carts: %w", err)
	}

	return nil
}
