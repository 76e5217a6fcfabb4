package checkout

import (
	"context"

	"bakery-be/internal/cart"
	"bakery-be/internal/order"
)

// Request carries the customer and delivery fields of the checkout form.
type Request struct {
	CustomerName        string `json:"customer_name"`
	CustomerEmail       string `json:"customer_email"`
	Phone               string `json:"phone"`
	DeliveryAddress     string `json:"delivery_address"`
	DeliveryDate        string `json:"delivery_date"`
	SpecialInstructions string `json:"special_instructions"`
}

type Result struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Total       int    `json:"total"`
	TotalItems  int    `json:"total_items"`
}

// Cart is the part of the cart store checkout reads and empties.
type Cart interface {
	Snapshot() cart.Snapshot
	RemoveLines(lines []cart.Item) error
}

// OrderWriter persists an order and then its lines.
type OrderWriter interface {
	Create(ctx context.Context, o order.NewOrder) (string, error)
	CreateItems(ctx context.Context, orderID string, items []order.NewItem) error
}
