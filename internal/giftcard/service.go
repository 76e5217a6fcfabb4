package giftcard

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"bakery-be/internal/logger"
	"bakery-be/internal/utils"

	"go.uber.org/zap"
)

const issueAttempts = 3

type Service interface {
	Issue(ctx context.Context, input IssueInput) (GiftCard, error)
	Lookup(ctx context.Context, code string) (*GiftCard, error)
	Redeem(ctx context.Context, code string, amount int) (int, error)
	Mine(ctx context.Context) ([]GiftCard, error)
}

type service struct {
	repo     Repository
	now      func() time.Time
	generate func(prefix string) string
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now, generate: utils.GenerateCode}
}

func validDenomination(amount int) bool {
	for _, d := range Denominations {
		if d == amount {
			return true
		}
	}
	return false
}

// NormalizeCode upper-cases a code and strips surrounding whitespace.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *service) Issue(ctx context.Context, input IssueInput) (GiftCard, error) {
	purchaser, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return GiftCard{}, ErrUnauthorized
	}
	if !validDenomination(input.Amount) {
		return GiftCard{}, ErrInvalidDenomination
	}

	log := logger.FromCtx(ctx).With(zap.String("method", "IssueGiftCard"))

	for attempt := 1; ; attempt++ {
		card, err := s.repo.Create(ctx, newCard{
			Code:      s.generate(CodePrefix),
			Amount:    input.Amount,
			Purchaser: purchaser,
			Input:     input,
			ExpiresAt: s.now().Add(Validity),
		})
		if errors.Is(err, ErrDuplicateCode) && attempt < issueAttempts {
			log.Warn("gift card code collision, retrying", zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			log.Error("failed to issue gift card", zap.Error(err))
			return GiftCard{}, err
		}

		log.Info("gift card issued", zap.Int("amount", card.InitialAmount))
		return card, nil
	}
}

func (s *service) Lookup(ctx context.Context, code string) (*GiftCard, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, ErrNotFound
	}
	return s.repo.GetByCode(ctx, code)
}

// Redeem debits the card and returns the remaining balance.
func (s *service) Redeem(ctx context.Context, code string, amount int) (int, error) {
	if _, ok := utils.GetUserIDFromContext(ctx); !ok {
		return 0, ErrUnauthorized
	}
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	code = NormalizeCode(code)
	balance, err := s.repo.Debit(ctx, code, amount)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	// the guard rejected the debit; work out why
	card, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return 0, err
	}
	if card.Expired(s.now()) {
		return 0, ErrExpired
	}
	return 0, ErrInsufficientBalance
}

func (s *service) Mine(ctx context.Context) ([]GiftCard, error) {
	purchaser, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	return s.repo.ListByPurchaser(ctx, purchaser)
}
