package giftcard

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type Repository interface {
	Create(ctx context.Context, c newCard) (GiftCard, error)
	GetByCode(ctx context.Context, code string) (*GiftCard, error)
	Debit(ctx context.Context, code string, amount int) (int, error)
	ListByPurchaser(ctx context.Context, purchaserID string) ([]GiftCard, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const cardColumns = `id, code, initial_amount, balance, purchaser_id, recipient_name, recipient_email, message, expires_at, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (GiftCard, error) {
	var g GiftCard
	err := row.Scan(
		&g.ID,
		&g.Code,
		&g.InitialAmount,
		&g.Balance,
		&g.PurchaserID,
		&g.RecipientName,
		&g.RecipientEmail,
		&g.Message,
		&g.ExpiresAt,
		&g.CreatedAt,
	)
	return g, err
}

func (r *repository) Create(ctx context.Context, c newCard) (GiftCard, error) {
	g, err := scanCard(r.db.QueryRowContext(ctx, `
		INSERT INTO gift_cards (code, initial_amount, balance, purchaser_id, recipient_name, recipient_email, message, expires_at)
		VALUES ($1, $2, $2, $3, $4, $5, $6, $7)
		RETURNING `+cardColumns,
		c.Code,
		c.Amount,
		c.Purchaser,
		c.Input.RecipientName,
		c.Input.RecipientEmail,
		c.Input.Message,
		c.ExpiresAt,
	))

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return GiftCard{}, ErrDuplicateCode
	}
	return g, err
}

func (r *repository) GetByCode(ctx context.Context, code string) (*GiftCard, error) {
	g, err := scanCard(r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM gift_cards WHERE code = $1`, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Debit takes amount off the balance only when enough remains and the card is still
// valid. It returns the new balance, or sql.ErrNoRows when the guard rejected it.
func (r *repository) Debit(ctx context.Context, code string, amount int) (int, error) {
	var balance int
	err := r.db.QueryRowContext(ctx, `
		UPDATE gift_cards
		SET balance = balance - $1, updated_at = NOW()
		WHERE code = $2 AND balance >= $1 AND expires_at > NOW()
		RETURNING balance
	`, amount, code).Scan(&balance)
	return balance, err
}

func (r *repository) ListByPurchaser(ctx context.Context, purchaserID string) ([]GiftCard, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+cardColumns+` FROM gift_cards WHERE purchaser_id = $1 ORDER BY created_at DESC`,
		purchaserID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []GiftCard{}
	for rows.Next() {
		g, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, g)
	}
	return cards, rows.Err()
}
