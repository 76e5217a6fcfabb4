package notify

import "context"

// Dispatcher sends order notifications through the hosted notification functions.
type Dispatcher interface {
	SendWhatsApp(ctx context.Context, n OrderNotice) error
	SendOrderEmail(ctx context.Context, n OrderNotice) error
}

type Line struct {
	Name      string `json:"name"`
	Variant   string `json:"variant,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
}

// OrderNotice is everything both channels need to describe a placed order.
type OrderNotice struct {
	OrderID             string `json:"order_id"`
	OrderNumber         string `json:"order_number"`
	CustomerName        string `json:"customer_name"`
	CustomerEmail       string `json:"customer_email"`
	CustomerPhone       string `json:"customer_phone"`
	DeliveryAddress     string `json:"delivery_address"`
	DeliveryDate        string `json:"delivery_date"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
	Total               int    `json:"total"`
	Items               []Line `json:"items"`
}

type whatsAppRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
	OrderID string `json:"order_id"`
}

type emailRequest struct {
	To      string      `json:"to"`
	Subject string      `json:"subject"`
	Order   OrderNotice `json:"order"`
}
