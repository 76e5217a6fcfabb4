package favorite

import "time"

type Favorite struct {
	CustomerID string    `json:"customer_id"`
	ProductID  string    `json:"product_id"`
	Title      string    `json:"title"`
	Price      int       `json:"price"`
	ImageURL   *string   `json:"image_url,omitempty"`
	InStock    bool      `json:"in_stock"`
	CreatedAt  time.Time `json:"created_at"`
}
