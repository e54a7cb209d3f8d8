package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sattamap/mechkeys-server/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{
		collection: db.Collection("carts"),
	}
}

func (m *mongoCartRepository) IncrementQuantity(ctx context.Context, productID string, delta, maxQuantity int) (*domain.CartItem, error) {
	// Single conditional update: the filter caps the combined quantity so two
	// concurrent adds cannot overshoot the stock between them.
	filter := bson.M{
		"productId": productID,
		"quantity":  bson.M{"$lte": maxQuantity - delta},
	}
	update := bson.M{
		"$inc": bson.M{"quantity": delta},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item domain.CartItem
	err := m.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&item)
	if err == nil {
		return &item, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to increment cart quantity: %w", err)
	}

	// No match: either the item is absent or the cap would be exceeded.
	count, err := m.collection.CountDocuments(ctx, bson.M{"productId": productID})
	if err != nil {
		return nil, fmt.Errorf("failed to check cart item existence: %w", err)
	}
	if count > 0 {
		return nil, ErrInsufficientStock
	}
	return nil, ErrCartItemNotFound
}

func (m *mongoCartRepository) Insert(ctx context.Context, item *domain.CartItem) error {
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	_, err := m.collection.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to insert cart item: %w", err)
	}

	return nil
}

func (m *mongoCartRepository) SetQuantity(ctx context.Context, productID string, quantity int) (*domain.CartItem, error) {
	filter := bson.M{"productId": productID}
	update := bson.M{
		"$set": bson.M{
			"quantity":  quantity,
			"updatedAt": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item domain.CartItem
	err := m.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to update cart item quantity: %w", err)
	}

	return &item, nil
}

func (m *mongoCartRepository) Remove(ctx context.Context, productID string) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"productId": productID})
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (m *mongoCartRepository) ListJoined(ctx context.Context) ([]domain.CartEntry, error) {
	// Items whose product no longer exists are dropped by the $unwind stage.
	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.M{
			"productObjectId": bson.M{"$toObjectId": "$productId"},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "productObjectId",
			"foreignField": "_id",
			"as":           "product",
		}}},
		{{Key: "$unwind", Value: "$product"}},
		{{Key: "$project", Value: bson.M{
			"_id":       1,
			"productId": 1,
			"quantity":  1,
			"product": bson.M{
				"_id":         1,
				"name":        1,
				"price":       1,
				"description": 1,
				"quantity":    1,
				"rating":      1,
				"brand":       1,
				"image":       1,
			},
		}}},
	}

	cursor, err := m.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate cart items: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []domain.CartEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode cart entries: %w", err)
	}

	return entries, nil
}

func (m *mongoCartRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "productId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}

	return nil
}
