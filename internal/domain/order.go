package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order is written once and never mutated. It keeps no link to cart items:
// placing an order neither clears the cart nor decrements product stock.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Phone         string             `bson:"phone" json:"phone"`
	Address       string             `bson:"address" json:"address"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	TotalPrice    float64            `bson:"totalPrice" json:"totalPrice"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
