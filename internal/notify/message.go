package notify

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatWhatsApp renders the plain-text order confirmation sent to the customer's phone.
func FormatWhatsApp(n OrderNotice) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s, thank you for your order!\n", n.CustomerName)
	fmt.Fprintf(&b, "Order: %s\n\n", n.OrderNumber)

	for _, it := range n.Items {
		name := it.Name
		if it.Variant != "" {
			name += " (" + it.Variant + ")"
		}
		fmt.Fprintf(&b, "%dx %s @ %s\n", it.Quantity, name, FormatAmount(it.UnitPrice))
	}

	fmt.Fprintf(&b, "\nTotal: %s\n", FormatAmount(n.Total))
	fmt.Fprintf(&b, "Delivery: %s\n", n.DeliveryDate)
	fmt.Fprintf(&b, "Address: %s", n.DeliveryAddress)

	if n.SpecialInstructions != "" {
		fmt.Fprintf(&b, "\nNotes: %s", n.SpecialInstructions)
	}
	return b.String()
}

func emailSubject(n OrderNotice) string {
	return "Your bakery order " + n.OrderNumber
}

// FormatAmount groups thousands with commas.
func FormatAmount(v int) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	s := strconv.Itoa(v)
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return sign + string(out)
}
