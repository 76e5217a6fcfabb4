package product

import (
	"strings"
	"time"

	"bakery-be/internal/catalog"
)

// ToRef is the subset of a product the variant resolver and cart need.
func ToRef(p Product) catalog.ProductRef {
	return catalog.ProductRef{
		ID:        p.ID,
		Title:     p.Title,
		Category:  p.Category,
		BasePrice: p.Price,
	}
}

func toDetail(p Product, now time.Time) *Detail {
	opts := catalog.ResolveOptions(p.Category, p.Title)
	days := catalog.LeadTimeDays(p.Category, p.Title)
	return &Detail{
		Product:          p,
		Options:          opts,
		HasVariants:      opts.HasVariants(),
		LeadTimeDays:     days,
		EarliestDelivery: catalog.EarliestDeliveryDate(now, days),
	}
}

func normalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}
