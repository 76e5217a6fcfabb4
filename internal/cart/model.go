package cart

// Item is one cart line: a product+variant configuration and how many of it.
type Item struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image,omitempty"`
	Variant   string `json:"variant,omitempty"`
	ProductID string `json:"product_id,omitempty"`
}

// Subtotal is price × quantity for the line.
func (i Item) Subtotal() int {
	return i.Price * i.Quantity
}

// Snapshot is a consistent read of the cart: lines plus aggregates computed from them.
type Snapshot struct {
	Items      []Item `json:"items"`
	TotalItems int    `json:"total_items"`
	TotalPrice int    `json:"total_price"`
}

// TotalItems sums quantities.
func TotalItems(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// TotalPrice sums price × quantity.
func TotalPrice(items []Item) int {
	total := 0
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}
