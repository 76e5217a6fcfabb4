package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const topProductsLimit = 8

// Growth is the percentage change from previous to current, or 0 when there is no
// previous baseline.
func Growth(current, previous float64) float64 {
	if previous > 0 {
		return (current - previous) / previous * 100
	}
	return 0
}

type periodTotals struct {
	revenue   int
	orders    int
	customers map[string]struct{}
}

func (p *periodTotals) add(o OrderRecord) {
	p.orders++
	if isPaid(o) {
		p.revenue += o.Amount
	}
	if o.CustomerID != "" {
		p.customers[o.CustomerID] = struct{}{}
	}
}

func (p *periodTotals) averageOrderValue() float64 {
	if p.orders == 0 {
		return 0
	}
	return float64(p.revenue) / float64(p.orders)
}

func newPeriod() *periodTotals {
	return &periodTotals{customers: map[string]struct{}{}}
}

func isPaid(o OrderRecord) bool {
	return strings.EqualFold(strings.TrimSpace(o.PaymentStatus), "paid")
}

// Compute derives the dashboard for the window ending at now. Orders in the window
// feed every series; orders in the window before it only feed the growth baselines.
// The input is never modified.
func Compute(orders []OrderRecord, window Window, now time.Time) Dashboard {
	days := int(window)
	loc := now.Location()

	currentStart := now.AddDate(0, 0, -days)
	previousStart := now.AddDate(0, 0, -2*days)

	current, previous := newPeriod(), newPeriod()

	var statuses StatusCounts
	daily := map[string]*DailyPoint{}
	weekly := map[string]*WeeklyPoint{}
	hourly := make([]HourPoint, 24)
	for h := range hourly {
		hourly[h].Hour = h
	}
	products := map[string]*ProductPoint{}

	for _, o := range orders {
		switch {
		case !o.CreatedAt.Before(currentStart):
		case !o.CreatedAt.Before(previousStart):
			previous.add(o)
			continue
		default:
			continue
		}

		current.add(o)
		countStatus(&statuses, o.Status)

		local := o.CreatedAt.In(loc)
		paid := 0
		if isPaid(o) {
			paid = o.Amount
		}

		dayKey := local.Format("2006-01-02")
		if p, ok := daily[dayKey]; ok {
			p.Revenue += paid
			p.Orders++
		} else {
			daily[dayKey] = &DailyPoint{Date: dayKey, Revenue: paid, Orders: 1}
		}

		year, week := local.ISOWeek()
		weekKey := fmt.Sprintf("%d-W%02d", year, week)
		if p, ok := weekly[weekKey]; ok {
			p.Revenue += paid
			p.Orders++
		} else {
			weekly[weekKey] = &WeeklyPoint{Week: weekKey, Revenue: paid, Orders: 1}
		}

		hourly[local.Hour()].Orders++

		for _, it := range o.Items {
			name := strings.TrimSpace(it.ProductName)
			if name == "" {
				continue
			}
			p, ok := products[name]
			if !ok {
				p = &ProductPoint{Name: name}
				products[name] = p
			}
			p.Quantity += it.Quantity
			p.Revenue += it.Quantity * it.UnitPrice
		}
	}

	return Dashboard{
		WindowDays:        days,
		From:              currentStart,
		To:                now,
		Revenue:           metric(float64(current.revenue), float64(previous.revenue)),
		Orders:            metric(float64(current.orders), float64(previous.orders)),
		AverageOrderValue: metric(current.averageOrderValue(), previous.averageOrderValue()),
		Customers:         metric(float64(len(current.customers)), float64(len(previous.customers))),
		Statuses:          statuses,
		DailyRevenue:      dailySeries(daily, currentStart, now),
		WeeklyRevenue:     weeklySeries(weekly),
		HourlyOrders:      hourly,
		TopProducts:       topProducts(products, topProductsLimit),
	}
}

func metric(current, previous float64) Metric {
	return Metric{Current: current, Previous: previous, Growth: Growth(current, previous)}
}

func countStatus(c *StatusCounts, status string) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "pending":
		c.Pending++
	case "confirmed":
		c.Confirmed++
	case "delivered":
		c.Delivered++
	case "cancelled", "canceled":
		c.Cancelled++
	}
}

// dailySeries has one point per calendar day from start to end, zero-filled.
func dailySeries(points map[string]*DailyPoint, start, end time.Time) []DailyPoint {
	loc := end.Location()
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc)

	out := []DailyPoint{}
	for !day.After(last) {
		key := day.Format("2006-01-02")
		if p, ok := points[key]; ok {
			out = append(out, *p)
		} else {
			out = append(out, DailyPoint{Date: key})
		}
		day = day.AddDate(0, 0, 1)
	}
	return out
}

func weeklySeries(points map[string]*WeeklyPoint) []WeeklyPoint {
	out := make([]WeeklyPoint, 0, len(points))
	for _, p := range points {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out
}

func topProducts(points map[string]*ProductPoint, limit int) []ProductPoint {
	out := make([]ProductPoint, 0, len(points))
	for _, p := range points {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
