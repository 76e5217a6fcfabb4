package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"bakery-be/internal/cart"
	"bakery-be/internal/logger"
	"bakery-be/internal/metrics"
	"bakery-be/internal/notify"
	"bakery-be/internal/order"
	"bakery-be/internal/utils"

	"go.uber.org/zap"
)

const (
	dateLayout = "2006-01-02"

	// createAttempts bounds retries when a generated order number is already taken.
	createAttempts = 3
)

type Service struct {
	orders   OrderWriter
	notifier notify.Dispatcher
	metrics  *metrics.Registry
	now      func() time.Time
	numbers  func(time.Time) string

	inflight sync.WaitGroup
}

func NewService(orders OrderWriter, notifier notify.Dispatcher, reg *metrics.Registry) *Service {
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &Service{
		orders:   orders,
		notifier: notifier,
		metrics:  reg,
		now:      time.Now,
		numbers:  utils.GenerateOrderNumber,
	}
}

// Submit turns the cart into an order. Preconditions are checked before anything is
// written. Once the order row exists the submission succeeds: a failed item insert is
// logged, and notifications are sent in the background after the cart is cleared.
func (s *Service) Submit(ctx context.Context, c Cart, req Request) (*Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
	)

	timer := metrics.StartTimer()

	newOrder, snap, err := s.validate(ctx, c, req)
	if err != nil {
		s.metrics.Inc(metrics.CheckoutRejected)
		log.Info("checkout rejected", zap.Error(err))
		return nil, err
	}

	var orderID string
	for attempt := 1; ; attempt++ {
		orderID, err = s.orders.Create(ctx, newOrder)
		if errors.Is(err, order.ErrDuplicateOrderNumber) && attempt < createAttempts {
			log.Warn("order number collision, retrying", zap.Int("attempt", attempt))
			newOrder.OrderNumber = s.numbers(s.now())
			continue
		}
		break
	}
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrOrderFailed, err)
	}

	log = log.With(zap.String("order_id", orderID))

	if err := s.orders.CreateItems(ctx, orderID, toOrderItems(snap.Items)); err != nil {
		// the order stays; no rollback
		s.metrics.Inc(metrics.OrderItemsFailed)
		log.Error("failed to insert order items", zap.Error(err))
	}

	s.metrics.Inc(metrics.OrdersPlaced)

	// only what was ordered leaves the cart
	if err := c.RemoveLines(snap.Items); err != nil {
		log.Warn("order placed but cart could not be cleared", zap.Error(err))
	}

	s.dispatch(ctx, toNotice(orderID, newOrder, snap.Items))

	log.Info("order placed",
		zap.String("order_number", newOrder.OrderNumber),
		zap.Int("total", newOrder.TotalAmount),
		zap.Int("items", snap.TotalItems),
		zap.Duration("duration", timer.Duration()),
	)

	return &Result{
		OrderID:     orderID,
		OrderNumber: newOrder.OrderNumber,
		Total:       newOrder.TotalAmount,
		TotalItems:  snap.TotalItems,
	}, nil
}

func (s *Service) validate(ctx context.Context, c Cart, req Request) (order.NewOrder, cart.Snapshot, error) {
	customerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return order.NewOrder{}, cart.Snapshot{}, ErrNotAuthenticated
	}

	snap := c.Snapshot()
	if len(snap.Items) == 0 {
		return order.NewOrder{}, cart.Snapshot{}, ErrCartEmpty
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return order.NewOrder{}, cart.Snapshot{}, ErrPhoneRequired
	}

	address := strings.TrimSpace(req.DeliveryAddress)
	if address == "" {
		return order.NewOrder{}, cart.Snapshot{}, ErrAddressRequired
	}

	rawDate := strings.TrimSpace(req.DeliveryDate)
	if rawDate == "" {
		return order.NewOrder{}, cart.Snapshot{}, ErrDeliveryDateRequired
	}
	deliveryDate, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		return order.NewOrder{}, cart.Snapshot{}, ErrInvalidDeliveryDate
	}

	email := strings.TrimSpace(req.CustomerEmail)
	if email == "" {
		email = utils.GetUserEmailFromContext(ctx)
	}

	return order.NewOrder{
		OrderNumber:         s.numbers(s.now()),
		CustomerID:          customerID,
		CustomerName:        strings.TrimSpace(req.CustomerName),
		CustomerEmail:       email,
		CustomerPhone:       phone,
		DeliveryAddress:     address,
		DeliveryDate:        deliveryDate,
		SpecialInstructions: utils.NilIfEmpty(strings.TrimSpace(req.SpecialInstructions)),
		TotalAmount:         snap.TotalPrice,
	}, snap, nil
}

// dispatch fires both notifications independently. They outlive the request.
func (s *Service) dispatch(ctx context.Context, notice notify.OrderNotice) {
	if s.notifier == nil {
		return
	}

	bg := context.WithoutCancel(ctx)
	log := logger.FromCtx(ctx).With(zap.String("order_id", notice.OrderID))

	send := func(channel string, fn func(context.Context, notify.OrderNotice) error) {
		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			if err := fn(bg, notice); err != nil {
				s.metrics.Inc(metrics.NotificationsFailed)
				log.Warn("notification failed", zap.String("channel", channel), zap.Error(err))
				return
			}
			s.metrics.Inc(metrics.NotificationsSent)
		}()
	}

	send("whatsapp", s.notifier.SendWhatsApp)
	send("email", s.notifier.SendOrderEmail)
}

// Wait blocks until every background notification has finished.
func (s *Service) Wait() {
	s.inflight.Wait()
}
