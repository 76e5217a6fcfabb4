package analytics

import (
	"time"

	"bakery-be/internal/product"
)

// OrderRecord is the flattened order shape the aggregator works on.
type OrderRecord struct {
	ID            string
	CustomerID    string
	CreatedAt     time.Time
	Amount        int
	PaymentStatus string
	Status        string
	Items         []ItemRecord
}

type ItemRecord struct {
	ProductName string
	Quantity    int
	UnitPrice   int
}

// Metric compares the selected window with the window of equal length before it.
type Metric struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Growth   float64 `json:"growth"`
}

type StatusCounts struct {
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Delivered int `json:"delivered"`
	Cancelled int `json:"cancelled"`
}

type DailyPoint struct {
	Date    string `json:"date"`
	Revenue int    `json:"revenue"`
	Orders  int    `json:"orders"`
}

type WeeklyPoint struct {
	Week    string `json:"week"`
	Revenue int    `json:"revenue"`
	Orders  int    `json:"orders"`
}

type HourPoint struct {
	Hour   int `json:"hour"`
	Orders int `json:"orders"`
}

type ProductPoint struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Revenue  int    `json:"revenue"`
}

type Dashboard struct {
	WindowDays        int                 `json:"window_days"`
	From              time.Time           `json:"from"`
	To                time.Time           `json:"to"`
	Revenue           Metric              `json:"revenue"`
	Orders            Metric              `json:"orders"`
	AverageOrderValue Metric              `json:"average_order_value"`
	Customers         Metric              `json:"customers"`
	Statuses          StatusCounts        `json:"statuses"`
	DailyRevenue      []DailyPoint        `json:"daily_revenue"`
	WeeklyRevenue     []WeeklyPoint       `json:"weekly_revenue"`
	HourlyOrders      []HourPoint         `json:"hourly_orders"`
	TopProducts       []ProductPoint      `json:"top_products"`
	Stock             *product.StockStats `json:"stock,omitempty"`
}
