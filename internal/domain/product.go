package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Brand       string             `bson:"brand" json:"brand"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Description string             `bson:"description" json:"description"`
	Rating      float64            `bson:"rating" json:"rating"`
	Image       string             `bson:"image" json:"image"`
}

const (
	StockLabelInStock    = "In Stock"
	StockLabelOutOfStock = "Out of Stock"
)

// StockLabel is display-only and never persisted.
func (p Product) StockLabel() string {
	if p.Quantity > 0 {
		return StockLabelInStock
	}
	return StockLabelOutOfStock
}

// StockedProduct is the catalog read model: a product plus its stock label.
type StockedProduct struct {
	Product
	Stock string `json:"stock"`
}

// Sort directives accepted by the product listing.
const (
	SortPriceLowToHigh = "priceLowToHigh"
	SortPriceHighToLow = "priceHighToLow"
)

// ProductFilter narrows a catalog listing. Zero values mean "no constraint";
// price bounds are inclusive.
type ProductFilter struct {
	Search   string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
	Sort     string
}
