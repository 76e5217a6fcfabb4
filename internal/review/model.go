package review

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type NewReviewInput struct {
	ProductID    string  `json:"product_id"`
	CustomerName string  `json:"customer_name"`
	Rating       int     `json:"rating"`
	Comment      *string `json:"comment"`
}

// Summary is the rating breakdown shown next to a product.
type Summary struct {
	ProductID string      `json:"product_id"`
	Count     int         `json:"count"`
	Average   float64     `json:"average"`
	ByRating  map[int]int `json:"by_rating"`
}
