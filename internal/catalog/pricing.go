package catalog

import (
	"regexp"
	"strings"
)

var nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]+`)

// FinalUnitPrice adds the selected size and quantity modifiers to the base price.
// Flavors never affect price.
func FinalUnitPrice(basePrice int, size *SizeOption, quantity *QuantityOption) int {
	price := basePrice
	if size != nil {
		price += size.PriceModifier
	}
	if quantity != nil {
		price += quantity.PriceModifier
	}
	return price
}

// LineID builds the composite identity of a cart line: the product id followed by the
// normalized labels of the chosen variants. A product without variants keeps its own id.
func LineID(productID string, labels ...string) string {
	parts := []string{productID}
	for _, l := range labels {
		if n := slugLabel(l); n != "" {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, "-")
}

// Configure validates a selection against the product's options and prices it.
func Configure(p ProductRef, sel Selection) (Configuration, error) {
	if strings.TrimSpace(p.ID) == "" {
		return Configuration{}, ErrMissingProductID
	}

	opts := ResolveOptions(p.Category, p.Title)
	if err := opts.Validate(sel); err != nil {
		return Configuration{}, err
	}

	cfg := Configuration{
		Title:        p.Title,
		LeadTimeDays: LeadTimeDays(p.Category, p.Title),
	}

	var labels, summary []string

	if len(opts.Flavors) > 0 {
		cfg.Flavor = canonicalFlavor(opts, sel.Flavor)
		labels = append(labels, cfg.Flavor)
		summary = append(summary, "Flavor: "+cfg.Flavor)
	}
	if len(opts.Sizes) > 0 {
		cfg.Size, _ = opts.Size(sel.SizeID)
		labels = append(labels, cfg.Size.Label)
		summary = append(summary, "Size: "+cfg.Size.Label)
	}
	if len(opts.Quantities) > 0 {
		cfg.Quantity, _ = opts.Quantity(sel.QuantityID)
		labels = append(labels, cfg.Quantity.Label)
		summary = append(summary, "Quantity: "+cfg.Quantity.Label)
	}

	cfg.LineID = LineID(p.ID, labels...)
	cfg.UnitPrice = FinalUnitPrice(p.BasePrice, cfg.Size, cfg.Quantity)
	if cfg.UnitPrice < 0 {
		return Configuration{}, ErrNegativePrice
	}
	if len(labels) > 0 {
		cfg.Title = p.Title + " - " + strings.Join(labels, ", ")
		cfg.Summary = strings.Join(summary, ", ")
	}

	return cfg, nil
}

func canonicalFlavor(opts Options, label string) string {
	for _, f := range opts.Flavors {
		if strings.EqualFold(f, label) {
			return f
		}
	}
	return label
}

func slugLabel(label string) string {
	s := nonAlnumRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(label)), "-")
	return strings.Trim(s, "-")
}
