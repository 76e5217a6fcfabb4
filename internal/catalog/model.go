package catalog

// SizeOption and QuantityOption carry a signed price delta added to the base price.
type SizeOption struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	PriceModifier int    `json:"price_modifier"`
	Description   string `json:"description,omitempty"`
}

type QuantityOption struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	PriceModifier int    `json:"price_modifier"`
	Description   string `json:"description,omitempty"`
}

// Options is the set of variant kinds a product exposes. Empty slices mean the kind is
// not offered.
type Options struct {
	Flavors    []string         `json:"flavors"`
	Sizes      []SizeOption     `json:"sizes"`
	Quantities []QuantityOption `json:"quantities"`
}

// Selection is what the customer picked in the variant dialog.
type Selection struct {
	Flavor     string `json:"flavor,omitempty"`
	SizeID     string `json:"size_id,omitempty"`
	QuantityID string `json:"quantity_id,omitempty"`
}

// ProductRef is the subset of a catalog product needed to configure a cart line.
type ProductRef struct {
	ID        string
	Title     string
	Category  string
	BasePrice int
}

// Configuration is a fully priced product+variant combination, ready to become a cart line.
type Configuration struct {
	LineID       string          `json:"line_id"`
	Title        string          `json:"title"`
	UnitPrice    int             `json:"unit_price"`
	Summary      string          `json:"summary,omitempty"`
	Flavor       string          `json:"flavor,omitempty"`
	Size         *SizeOption     `json:"size,omitempty"`
	Quantity     *QuantityOption `json:"quantity,omitempty"`
	LeadTimeDays int             `json:"lead_time_days"`
}
