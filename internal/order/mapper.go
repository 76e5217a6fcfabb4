package order

// attachItems fills each order's Items from a map keyed by order id. Orders with no
// rows get an empty slice, never nil.
func attachItems(orders []Order, items map[string][]Item) {
	for i := range orders {
		if its, ok := items[orders[i].ID]; ok {
			orders[i].Items = its
		} else {
			orders[i].Items = []Item{}
		}
	}
}

func orderIDs(orders []Order) []string {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	return ids
}
