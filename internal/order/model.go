package order

import "time"

type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusReadyForPickup Status = "ready_for_pickup"
	StatusInDelivery     Status = "in_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// lifecycle is the forward order of fulfilment stages.
var lifecycle = []Status{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReadyForPickup,
	StatusInDelivery,
	StatusDelivered,
}

func (s Status) stage() int {
	for i, st := range lifecycle {
		if st == s {
			return i
		}
	}
	return -1
}

func (s Status) Valid() bool {
	return s == StatusCancelled || s.stage() >= 0
}

// CanTransitionTo allows moving forward through the lifecycle, skipping stages if
// needed, and cancelling anything not yet delivered.
func (s Status) CanTransitionTo(next Status) bool {
	if s == StatusCancelled || s == StatusDelivered {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	from, to := s.stage(), next.stage()
	return from >= 0 && to > from
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

type Order struct {
	ID                  string        `json:"id"`
	OrderNumber         string        `json:"order_number"`
	CustomerID          string        `json:"customer_id"`
	CustomerName        string        `json:"customer_name"`
	CustomerEmail       string        `json:"customer_email"`
	CustomerPhone       string        `json:"customer_phone"`
	DeliveryAddress     string        `json:"delivery_address"`
	DeliveryDate        time.Time     `json:"delivery_date"`
	SpecialInstructions *string       `json:"special_instructions,omitempty"`
	TotalAmount         int           `json:"total_amount"`
	Status              Status        `json:"status"`
	PaymentStatus       PaymentStatus `json:"payment_status"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           *time.Time    `json:"updated_at,omitempty"`
	Items               []Item        `json:"items"`
}

// Item is an order line. Name and price are copied at submission so later catalog
// edits never change a placed order.
type Item struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"order_id"`
	ProductID   *string `json:"product_id,omitempty"`
	ProductName string  `json:"product_name"`
	Variant     *string `json:"variant,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   int     `json:"unit_price"`
}

func (i Item) Subtotal() int {
	return i.UnitPrice * i.Quantity
}

type NewOrder struct {
	OrderNumber         string
	CustomerID          string
	CustomerName        string
	CustomerEmail       string
	CustomerPhone       string
	DeliveryAddress     string
	DeliveryDate        time.Time
	SpecialInstructions *string
	TotalAmount         int
}

type NewItem struct {
	ProductID   *string
	ProductName string
	Variant     *string
	Quantity    int
	UnitPrice   int
}

type ListFilter struct {
	CustomerID *string
	Status     *Status
	Since      *time.Time
	Limit      int32
	Page       int32
}
