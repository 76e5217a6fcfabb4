package product

import (
	"context"
	"sort"
	"strings"
	"time"

	"bakery-be/internal/logger"
	"bakery-be/internal/utils"

	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"
)

const maxSuggestions = 3

type Service interface {
	List(ctx context.Context, opts ListOptions) (*ListResult, error)
	Detail(ctx context.Context, id string) (*Detail, error)
	Get(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, input NewProductInput) (Product, error)
	Update(ctx context.Context, input UpdateProductInput) (Product, error)
	SetStock(ctx context.Context, id string, inStock bool) error
	SetOffer(ctx context.Context, id string, isOffer bool) error
	Stats(ctx context.Context) (StockStats, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListProducts"),
	)

	start := time.Now()

	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	} else if opts.Limit > 100 {
		opts.Limit = 100
	}

	products, err := s.repo.List(ctx, opts)
	if err != nil {
		log.Error("failed to fetch product list", zap.Error(err))
		return nil, err
	}

	result := &ListResult{Items: products}

	if len(products) == 0 && opts.Search != nil && strings.TrimSpace(*opts.Search) != "" {
		titles, err := s.repo.Titles(ctx)
		if err != nil {
			// suggestions are optional
			log.Warn("failed to load titles for suggestions", zap.Error(err))
		} else {
			result.Suggestions = Suggest(*opts.Search, titles)
		}
	}

	log.Info("get product list success",
		zap.Int("count", len(products)),
		zap.Int("suggestions", len(result.Suggestions)),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

// Suggest returns up to three titles close to a misspelled search term, nearest first.
// A title matches when the term is within edit distance of the whole title or of any
// word in it.
func Suggest(term string, titles []string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	threshold := len(term) / 3
	if threshold < 2 {
		threshold = 2
	}

	type candidate struct {
		title string
		dist  int
	}
	var found []candidate

	for _, title := range titles {
		lower := strings.ToLower(title)
		best := levenshtein.ComputeDistance(term, lower)
		for _, word := range strings.Fields(lower) {
			if d := levenshtein.ComputeDistance(term, word); d < best {
				best = d
			}
		}
		if best <= threshold {
			found = append(found, candidate{title: title, dist: best})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].title < found[j].title
	})

	out := []string{}
	for i := 0; i < len(found) && i < maxSuggestions; i++ {
		out = append(out, found[i].title)
	}
	return out
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrProductNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Detail(ctx context.Context, id string) (*Detail, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDetail(*p, s.now()), nil
}

func (s *service) Create(ctx context.Context, input NewProductInput) (Product, error) {
	if !utils.IsAdmin(ctx) {
		return Product{}, ErrForbidden
	}

	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return Product{}, ErrTitleRequired
	}
	if input.Price < 0 {
		return Product{}, ErrInvalidPrice
	}

	p, err := s.repo.Create(ctx, input)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create product", zap.Error(err))
		return Product{}, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, input UpdateProductInput) (Product, error) {
	if !utils.IsAdmin(ctx) {
		return Product{}, ErrForbidden
	}
	if input.ID == "" {
		return Product{}, ErrProductNotFound
	}

	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return Product{}, ErrTitleRequired
	}
	if input.Price != nil && *input.Price < 0 {
		return Product{}, ErrInvalidPrice
	}
	if !input.hasChanges() {
		return Product{}, ErrNoFieldsUpdate
	}

	return s.repo.Update(ctx, input)
}

func (s *service) SetStock(ctx context.Context, id string, inStock bool) error {
	if !utils.IsAdmin(ctx) {
		return ErrForbidden
	}
	return s.repo.SetStock(ctx, id, inStock)
}

func (s *service) SetOffer(ctx context.Context, id string, isOffer bool) error {
	if !utils.IsAdmin(ctx) {
		return ErrForbidden
	}
	return s.repo.SetOffer(ctx, id, isOffer)
}

func (s *service) Stats(ctx context.Context) (StockStats, error) {
	return s.repo.Stats(ctx)
}
