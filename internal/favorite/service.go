package favorite

import (
	"context"
	"strings"

	"bakery-be/internal/logger"
	"bakery-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Add(ctx context.Context, productID string) error
	Remove(ctx context.Context, productID string) error
	List(ctx context.Context) ([]Favorite, error)
	ProductIDs(ctx context.Context) ([]string, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) customer(ctx context.Context, productID string) (string, error) {
	customerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return "", ErrUnauthorized
	}
	if strings.TrimSpace(productID) == "" {
		return "", ErrMissingProductID
	}
	return customerID, nil
}

func (s *service) Add(ctx context.Context, productID string) error {
	customerID, err := s.customer(ctx, productID)
	if err != nil {
		return err
	}
	if err := s.repo.Add(ctx, customerID, productID); err != nil {
		logger.FromCtx(ctx).Error("failed to add favorite",
			zap.String("product_id", productID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) Remove(ctx context.Context, productID string) error {
	customerID, err := s.customer(ctx, productID)
	if err != nil {
		return err
	}
	return s.repo.Remove(ctx, customerID, productID)
}

func (s *service) List(ctx context.Context) ([]Favorite, error) {
	customerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	return s.repo.List(ctx, customerID)
}

func (s *service) ProductIDs(ctx context.Context) ([]string, error) {
	customerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	return s.repo.ProductIDs(ctx, customerID)
}
