package catalog

import (
	"strings"
	"time"
)

const (
	CategoryCakes    = "cakes"
	CategoryCupcakes = "cupcakes"
	CategoryCookies  = "cookies"
	CategoryDonuts   = "donuts"
	CategoryWedding  = "wedding"
)

const (
	StandardLeadTimeDays = 2
	ExtendedLeadTimeDays = 3
)

var (
	cakeSizes = []SizeOption{
		{ID: "small", Label: "Small", PriceModifier: 0, Description: "Serves 6-8"},
		{ID: "medium", Label: "Medium", PriceModifier: 300, Description: "Serves 10-12"},
		{ID: "large", Label: "Large", PriceModifier: 600, Description: "Serves 16-20"},
	}

	cookieSizes = []SizeOption{
		{ID: "regular", Label: "Regular", PriceModifier: 0},
		{ID: "large", Label: "Large", PriceModifier: 50, Description: "Bakery-style, 12cm"},
	}

	cupcakeQuantities = []QuantityOption{
		{ID: "6", Label: "6 Pieces", PriceModifier: 0},
		{ID: "12", Label: "12 Pieces", PriceModifier: 300},
		{ID: "24", Label: "24 Pieces", PriceModifier: 550, Description: "Party box"},
	}

	cookieQuantities = []QuantityOption{
		{ID: "6", Label: "6 Pieces", PriceModifier: 0},
		{ID: "12", Label: "12 Pieces", PriceModifier: 200},
		{ID: "24", Label: "24 Pieces", PriceModifier: 380, Description: "Party box"},
	}

	donutQuantities = []QuantityOption{
		{ID: "6", Label: "6 Pieces", PriceModifier: 0},
		{ID: "12", Label: "12 Pieces", PriceModifier: 250},
	}

	flavorsByCategory = map[string][]string{
		CategoryCupcakes: {"Vanilla", "Chocolate", "Red Velvet", "Lemon", "Strawberry", "Salted Caramel"},
		CategoryCakes:    {"Chocolate Truffle", "Vanilla", "Red Velvet", "Black Forest", "Pineapple", "Butterscotch"},
		CategoryCookies:  {"Chocolate Chip", "Double Chocolate", "Oatmeal Raisin", "Peanut Butter"},
	}

	extendedLeadTimeKeywords = []string{"wedding", "tier", "custom", "anniversary", "birthday", "per kg"}
)

// ResolveOptions derives the variant kinds a product offers from its category and title.
// It is a pure lookup: the same inputs always yield the same option sets.
func ResolveOptions(category, title string) Options {
	cat := normalize(category)
	t := normalize(title)

	opts := Options{
		Flavors:    []string{},
		Sizes:      []SizeOption{},
		Quantities: []QuantityOption{},
	}

	switch {
	case cat == CategoryCakes || strings.Contains(t, "cake"):
		opts.Sizes = append(opts.Sizes, cakeSizes...)
	case cat == CategoryCookies || strings.Contains(t, "cookie"):
		opts.Sizes = append(opts.Sizes, cookieSizes...)
	}

	switch cat {
	case CategoryCupcakes:
		opts.Quantities = append(opts.Quantities, cupcakeQuantities...)
	case CategoryCookies:
		opts.Quantities = append(opts.Quantities, cookieQuantities...)
	case CategoryDonuts:
		opts.Quantities = append(opts.Quantities, donutQuantities...)
	}

	if flavors, ok := flavorsByCategory[cat]; ok {
		opts.Flavors = append(opts.Flavors, flavors...)
	}

	return opts
}

// HasVariants reports whether the customer must go through the selector dialog.
func (o Options) HasVariants() bool {
	return len(o.Flavors) > 0 || len(o.Sizes) > 0 || len(o.Quantities) > 0
}

func (o Options) Size(id string) (*SizeOption, bool) {
	for i := range o.Sizes {
		if o.Sizes[i].ID == id {
			s := o.Sizes[i]
			return &s, true
		}
	}
	return nil, false
}

func (o Options) Quantity(id string) (*QuantityOption, bool) {
	for i := range o.Quantities {
		if o.Quantities[i].ID == id {
			q := o.Quantities[i]
			return &q, true
		}
	}
	return nil, false
}

func (o Options) hasFlavor(label string) bool {
	for _, f := range o.Flavors {
		if strings.EqualFold(f, label) {
			return true
		}
	}
	return false
}

// Validate requires one value from every exposed kind. Values for kinds the product does
// not expose are rejected.
func (o Options) Validate(sel Selection) error {
	if len(o.Flavors) > 0 {
		if strings.TrimSpace(sel.Flavor) == "" {
			return ErrFlavorRequired
		}
		if !o.hasFlavor(sel.Flavor) {
			return ErrUnknownOption
		}
	} else if sel.Flavor != "" {
		return ErrUnknownOption
	}

	if len(o.Sizes) > 0 {
		if sel.SizeID == "" {
			return ErrSizeRequired
		}
		if _, ok := o.Size(sel.SizeID); !ok {
			return ErrUnknownOption
		}
	} else if sel.SizeID != "" {
		return ErrUnknownOption
	}

	if len(o.Quantities) > 0 {
		if sel.QuantityID == "" {
			return ErrQuantityRequired
		}
		if _, ok := o.Quantity(sel.QuantityID); !ok {
			return ErrUnknownOption
		}
	} else if sel.QuantityID != "" {
		return ErrUnknownOption
	}

	return nil
}

// LeadTimeDays returns the minimum days between ordering and fulfilment.
// Keyword matching is on the raw title, so "Chocolate Birthday Cupcakes" gets the
// extended lead time even though it is not a celebration cake.
func LeadTimeDays(category, title string) int {
	cat := normalize(category)
	t := normalize(title)

	if cat == CategoryWedding {
		return ExtendedLeadTimeDays
	}
	if cat == CategoryCakes && containsAny(t, extendedLeadTimeKeywords) {
		return ExtendedLeadTimeDays
	}
	if containsAny(t, extendedLeadTimeKeywords) {
		return ExtendedLeadTimeDays
	}
	return StandardLeadTimeDays
}

// EarliestDeliveryDate is the first calendar day (midnight, in now's location) a product
// with the given lead time can be delivered.
func EarliestDeliveryDate(now time.Time, leadTimeDays int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, leadTimeDays)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
