package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem references its product by hex id string, not a native ObjectID.
// At most one item exists per product (upsert-by-product semantics).
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ProductID string             `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CartEntry is a cart item joined with the public fields of its product.
type CartEntry struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	ProductID string             `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Product   CartProduct        `bson:"product" json:"product"`
}

type CartProduct struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Rating      float64            `bson:"rating" json:"rating"`
	Brand       string             `bson:"brand" json:"brand"`
	Image       string             `bson:"image" json:"image"`
}
