package review

import (
	"context"
	"math"
	"strings"

	"bakery-be/internal/logger"
	"bakery-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input NewReviewInput) (Review, error)
	List(ctx context.Context, productID string) ([]Review, error)
	Summary(ctx context.Context, productID string) (Summary, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input NewReviewInput) (Review, error) {
	customerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return Review{}, ErrUnauthorized
	}
	if strings.TrimSpace(input.ProductID) == "" {
		return Review{}, ErrMissingProductID
	}
	if input.Rating < MinRating || input.Rating > MaxRating {
		return Review{}, ErrInvalidRating
	}

	input.CustomerName = strings.TrimSpace(input.CustomerName)
	if input.CustomerName == "" {
		input.CustomerName = utils.GetUserEmailFromContext(ctx)
	}
	if input.Comment != nil {
		input.Comment = utils.NilIfEmpty(strings.TrimSpace(*input.Comment))
	}

	rv, err := s.repo.Create(ctx, customerID, input)
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to create review",
			zap.String("product_id", input.ProductID),
			zap.Error(err),
		)
		return Review{}, err
	}
	return rv, nil
}

func (s *service) List(ctx context.Context, productID string) ([]Review, error) {
	return s.repo.ListByProduct(ctx, productID)
}

func (s *service) Summary(ctx context.Context, productID string) (Summary, error) {
	counts, err := s.repo.RatingCounts(ctx, productID)
	if err != nil {
		return Summary{}, err
	}
	return summarize(productID, counts), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if !utils.IsAdmin(ctx) {
		return ErrUnauthorized
	}
	return s.repo.Delete(ctx, id)
}

// summarize fills every rating bucket and rounds the average to one decimal.
func summarize(productID string, counts map[int]int) Summary {
	sum := Summary{ProductID: productID, ByRating: map[int]int{}}

	total := 0
	for r := MinRating; r <= MaxRating; r++ {
		n := counts[r]
		sum.ByRating[r] = n
		sum.Count += n
		total += r * n
	}

	if sum.Count > 0 {
		sum.Average = math.Round(float64(total)/float64(sum.Count)*10) / 10
	}
	return sum
}
