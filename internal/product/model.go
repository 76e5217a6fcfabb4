package product

import (
	"time"

	"bakery-be/internal/catalog"
)

type Product struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Category    string     `json:"category"`
	Price       int        `json:"price"`
	ImageURL    *string    `json:"image_url,omitempty"`
	InStock     bool       `json:"in_stock"`
	IsOffer     bool       `json:"is_offer"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Detail is a product together with the variant options and notice period shown on
// its page.
type Detail struct {
	Product
	Options          catalog.Options `json:"options"`
	HasVariants      bool            `json:"has_variants"`
	LeadTimeDays     int             `json:"lead_time_days"`
	EarliestDelivery time.Time       `json:"earliest_delivery"`
}

type ListOptions struct {
	Category   *string
	Search     *string
	InStock    *bool
	OnlyOffers bool
	Limit      int32
	Page       int32
}

type ListResult struct {
	Items       []Product `json:"items"`
	Suggestions []string  `json:"suggestions,omitempty"`
}

type NewProductInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Category    string  `json:"category"`
	Price       int     `json:"price"`
	ImageURL    *string `json:"image_url"`
	InStock     bool    `json:"in_stock"`
	IsOffer     bool    `json:"is_offer"`
}

type UpdateProductInput struct {
	ID          string  `json:"-"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Price       *int    `json:"price"`
	ImageURL    *string `json:"image_url"`
}

func (in UpdateProductInput) hasChanges() bool {
	return in.Title != nil || in.Description != nil || in.Category != nil || in.Price != nil || in.ImageURL != nil
}

// StockStats summarises the catalog for the admin dashboard.
type StockStats struct {
	Total      int `json:"total"`
	InStock    int `json:"in_stock"`
	OutOfStock int `json:"out_of_stock"`
	Offers     int `json:"offers"`
}
