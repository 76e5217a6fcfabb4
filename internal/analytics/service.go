package analytics

import (
	"context"
	"errors"
	"time"

	"bakery-be/internal/logger"
	"bakery-be/internal/order"
	"bakery-be/internal/product"
	"bakery-be/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrForbidden = errors.New("admin role required")

type OrderSource interface {
	List(ctx context.Context, filter order.ListFilter) ([]order.Order, error)
	ItemsByOrderIDs(ctx context.Context, orderIDs []string) (map[string][]order.Item, error)
}

type StockSource interface {
	Stats(ctx context.Context) (product.StockStats, error)
}

type Service struct {
	orders OrderSource
	stock  StockSource
	now    func() time.Time
}

func NewService(orders OrderSource, stock StockSource) *Service {
	return &Service{orders: orders, stock: stock, now: time.Now}
}

// Dashboard loads both comparison windows and catalog stock figures concurrently.
func (s *Service) Dashboard(ctx context.Context, window Window) (*Dashboard, error) {
	if !utils.IsAdmin(ctx) {
		return nil, ErrForbidden
	}
	if !window.Valid() {
		return nil, ErrUnsupportedWindow
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Dashboard"),
		zap.Int("window_days", int(window)),
	)

	start := time.Now()
	now := s.now()
	since := now.AddDate(0, 0, -2*int(window))

	var (
		records []OrderRecord
		stats   product.StockStats
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		orders, err := s.orders.List(gctx, order.ListFilter{Since: &since})
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(orders))
		for _, o := range orders {
			ids = append(ids, o.ID)
		}
		items, err := s.orders.ItemsByOrderIDs(gctx, ids)
		if err != nil {
			return err
		}
		records = toRecords(orders, items)
		return nil
	})

	g.Go(func() error {
		var err error
		stats, err = s.stock.Stats(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error("failed to load dashboard data", zap.Error(err))
		return nil, err
	}

	d := Compute(records, window, now)
	d.Stock = &stats

	log.Info("dashboard computed",
		zap.Int("orders", len(records)),
		zap.Duration("duration", time.Since(start)),
	)
	return &d, nil
}

func toRecords(orders []order.Order, items map[string][]order.Item) []OrderRecord {
	out := make([]OrderRecord, 0, len(orders))
	for _, o := range orders {
		r := OrderRecord{
			ID:            o.ID,
			CustomerID:    o.CustomerID,
			CreatedAt:     o.CreatedAt,
			Amount:        o.TotalAmount,
			PaymentStatus: string(o.PaymentStatus),
			Status:        string(o.Status),
		}
		for _, it := range items[o.ID] {
			r.Items = append(r.Items, ItemRecord{
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
			})
		}
		out = append(out, r)
	}
	return out
}
