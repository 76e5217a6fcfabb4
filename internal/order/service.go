package order

import (
	"context"
	"errors"
	"time"

	"bakery-be/internal/logger"
	"bakery-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, filter ListFilter) ([]Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) (*Order, error)
	Cancel(ctx context.Context, id string) (*Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// List returns the caller's orders with their items; admins see every order.
func (s *service) List(ctx context.Context, filter ListFilter) ([]Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListOrders"),
	)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if !utils.IsAdmin(ctx) {
		filter.CustomerID = &userID
	}

	if filter.Limit > 100 {
		filter.Limit = 100
	}

	start := time.Now()

	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list orders", zap.Error(err))
		return nil, err
	}

	items, err := s.repo.ItemsByOrderIDs(ctx, orderIDs(orders))
	if err != nil {
		log.Error("failed to load order items", zap.Error(err))
		return nil, err
	}
	attachItems(orders, items)

	log.Info("list orders success",
		zap.Int("count", len(orders)),
		zap.Duration("duration", time.Since(start)),
	)
	return orders, nil
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// other customers' orders look absent rather than forbidden
	if !utils.IsAdmin(ctx) && o.CustomerID != userID {
		return nil, ErrOrderNotFound
	}

	if err := s.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	if !utils.IsAdmin(ctx) {
		return nil, ErrForbidden
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, o, status)
}

// Cancel lets a customer withdraw an order that has not started preparation.
func (s *service) Cancel(ctx context.Context, id string) (*Order, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !utils.IsAdmin(ctx) && o.Status != StatusPending && o.Status != StatusConfirmed {
		return nil, ErrInvalidTransition
	}
	return s.transition(ctx, o, StatusCancelled)
}

// transition moves o to status. The update is conditional on o's current status, so a
// concurrent change made after o was read rejects this one.
func (s *service) transition(ctx context.Context, o *Order, status Status) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "UpdateOrderStatus"),
		zap.String("order_id", o.ID),
		zap.String("from", string(o.Status)),
		zap.String("status", string(status)),
	)

	if !o.Status.CanTransitionTo(status) {
		log.Warn("rejected status transition")
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, o.ID, o.Status, status); err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			log.Warn("order status changed concurrently")
		} else {
			log.Error("failed to update order status", zap.Error(err))
		}
		return nil, err
	}

	o.Status = status
	log.Info("order status updated")
	return o, nil
}

func (s *service) UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) (*Order, error) {
	if !utils.IsAdmin(ctx) {
		return nil, ErrForbidden
	}
	if !status.Valid() {
		return nil, ErrInvalidPaymentStatus
	}

	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePaymentStatus(ctx, id, status); err != nil {
		logger.FromCtx(ctx).Error("failed to update payment status",
			zap.String("order_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	o.PaymentStatus = status
	return o, nil
}

func (s *service) loadItems(ctx context.Context, o *Order) error {
	items, err := s.repo.ItemsByOrderIDs(ctx, []string{o.ID})
	if err != nil {
		return err
	}
	orders := []Order{*o}
	attachItems(orders, items)
	o.Items = orders[0].Items
	return nil
}
