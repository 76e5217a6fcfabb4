package checkout

import (
	"bakery-be/internal/cart"
	"bakery-be/internal/notify"
	"bakery-be/internal/order"
	"bakery-be/internal/utils"
)

func toOrderItems(items []cart.Item) []order.NewItem {
	out := make([]order.NewItem, 0, len(items))
	for _, it := range items {
		out = append(out, order.NewItem{
			ProductID:   utils.NilIfEmpty(it.ProductID),
			ProductName: it.Title,
			Variant:     utils.NilIfEmpty(it.Variant),
			Quantity:    it.Quantity,
			UnitPrice:   it.Price,
		})
	}
	return out
}

func toNotice(orderID string, o order.NewOrder, items []cart.Item) notify.OrderNotice {
	lines := make([]notify.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, notify.Line{
			Name:      it.Title,
			Variant:   it.Variant,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
		})
	}

	return notify.OrderNotice{
		OrderID:             orderID,
		OrderNumber:         o.OrderNumber,
		CustomerName:        o.CustomerName,
		CustomerEmail:       o.CustomerEmail,
		CustomerPhone:       o.CustomerPhone,
		DeliveryAddress:     o.DeliveryAddress,
		DeliveryDate:        o.DeliveryDate.Format(dateLayout),
		SpecialInstructions: utils.PtrString(o.SpecialInstructions),
		Total:               o.TotalAmount,
		Items:               lines,
	}
}
