package domain

import (
	"fmt"
	"time"
)

// CurrencyPrefix is the display prefix for prices (Peruvian sol).
// Amounts are stored numerically and formatted only at render time.
const CurrencyPrefix = "S/"

// Product represents a sellable catalog item. Products are created by the
// catalog and immutable from the shopper's point of view; carts and orders
// hold copies, never references into the catalog.
type Product struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Price       float64   `json:"price" bson:"price"`
	Description string    `json:"description" bson:"description"`
	ImageURL    string    `json:"image_url" bson:"image_url"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// DisplayPrice renders the numeric price with the currency prefix.
func (p Product) DisplayPrice() string {
	return FormatAmount(p.Price)
}

// FormatAmount formats a monetary amount for display, e.g. "S/120.00".
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%s%.2f", CurrencyPrefix, amount)
}

// StoreLocation is the fixed physical store position shown on the map screen.
type StoreLocation struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
