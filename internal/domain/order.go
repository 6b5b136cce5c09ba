package domain

import "time"

// DeliveryMethod selects how a purchase reaches the customer.
type DeliveryMethod string

const (
	DeliveryInStore DeliveryMethod = "in_store"
	DeliveryCourier DeliveryMethod = "delivery"
)

// PickupAddress is the marker address stored for in-store pickup orders.
const PickupAddress = "Recojo en tienda"

// OrderTimeFormat is the fixed display format for order timestamps.
const OrderTimeFormat = "2006-01-02 15:04"

// Valid reports whether the delivery method is one of the known values.
func (m DeliveryMethod) Valid() bool {
	return m == DeliveryInStore || m == DeliveryCourier
}

// OrderItem is a snapshot of a product taken at submission time, decoupled
// from any later catalog change.
type OrderItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
}

// Order is a persisted record of a completed checkout. Rating and Comment are
// the only fields that mutate after creation; a rating of 0 means unrated.
type Order struct {
	ID             string         `json:"id" bson:"_id"`
	UserID         string         `json:"user_id" bson:"user_id"`
	Items          []OrderItem    `json:"items" bson:"items"`
	Total          float64        `json:"total" bson:"total"`
	DeliveryMethod DeliveryMethod `json:"delivery_method" bson:"delivery_method"`
	Address        string         `json:"address" bson:"address"`
	Rating         int            `json:"rating" bson:"rating"`
	Comment        string         `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt      time.Time      `json:"created_at" bson:"created_at"`
}

// DisplayTotal renders the order total with the currency prefix.
func (o Order) DisplayTotal() string {
	return FormatAmount(o.Total)
}

// DisplayDate renders the creation time in the fixed history format.
func (o Order) DisplayDate() string {
	return o.CreatedAt.Format(OrderTimeFormat)
}

// Comment is a per-product feedback record fanned out from an order's rating.
// ProductID is the catalog item's immutable ID, so two products sharing a
// display name can never collide.
type Comment struct {
	ID         string    `json:"id" bson:"_id"`
	CustomerID string    `json:"customer_id" bson:"customer_id"`
	ProductID  string    `json:"product_id" bson:"product_id"`
	Text       string    `json:"text,omitempty" bson:"text,omitempty"`
	Rating     int       `json:"rating" bson:"rating"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
