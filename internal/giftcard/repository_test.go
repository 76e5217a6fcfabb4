package giftcard

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cardRowColumns = []string{
	"id", "code", "initial_amount", "balance", "purchaser_id",
	"recipient_name", "recipient_email", "message", "expires_at", "created_at",
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()
	expires := time.Date(2027, 10, 15, 0, 0, 0, 0, time.UTC)
	name := "Ayu"

	c := newCard{Code: "GIFT-AAAA-BBBB-CCCC", Amount: 500, Purchaser: "cust-1", Input: IssueInput{RecipientName: &name}, ExpiresAt: expires}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO gift_cards`).
			WithArgs("GIFT-AAAA-BBBB-CCCC", 500, "cust-1", &name, nil, nil, expires).
			WillReturnRows(sqlmock.NewRows(cardRowColumns).
				AddRow("g1", "GIFT-AAAA-BBBB-CCCC", 500, 500, "cust-1", "Ayu", nil, nil, expires, time.Now()))

		g, err := repo.Create(ctx, c)
		require.NoError(t, err)
		assert.Equal(t, "g1", g.ID)
		assert.Equal(t, 500, g.Balance)
		require.NotNil(t, g.RecipientName)
		assert.Equal(t, "Ayu", *g.RecipientName)
	})

	t.Run("Code collision", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO gift_cards`).WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Create(ctx, c)
		assert.ErrorIs(t, err, ErrDuplicateCode)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM gift_cards WHERE code = $1`)).
		WithArgs("GIFT-1").
		WillReturnRows(sqlmock.NewRows(cardRowColumns).
			AddRow("g1", "GIFT-1", 1000, 400, "cust-1", nil, nil, nil, time.Now().Add(time.Hour), time.Now()))

	g, err := repo.GetByCode(ctx, "GIFT-1")
	require.NoError(t, err)
	assert.Equal(t, 400, g.Balance)
	assert.Nil(t, g.RecipientEmail)

	mock.ExpectQuery(`FROM gift_cards`).WithArgs("GIFT-2").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByCode(ctx, "GIFT-2")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Debit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Guarded update", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE gift_cards\s+SET balance = balance - \$1.*WHERE code = \$2 AND balance >= \$1`).
			WithArgs(300, "GIFT-1").
			WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(700))

		balance, err := repo.Debit(ctx, "GIFT-1", 300)
		require.NoError(t, err)
		assert.Equal(t, 700, balance)
	})

	t.Run("Guard rejects", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE gift_cards`).
			WithArgs(5000, "GIFT-1").
			WillReturnRows(sqlmock.NewRows([]string{"balance"}))

		_, err := repo.Debit(ctx, "GIFT-1", 5000)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByPurchaser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`WHERE purchaser_id = \$1 ORDER BY created_at DESC`).
		WithArgs("cust-1").
		WillReturnRows(sqlmock.NewRows(cardRowColumns))

	cards, err := repo.ListByPurchaser(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.NotNil(t, cards)
	assert.Empty(t, cards)
	assert.NoError(t, mock.ExpectationsWereMet())
}
