package review

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()
	input := NewReviewInput{ProductID: "p1", CustomerName: "Dana", Rating: 5}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO reviews`).
			WithArgs("p1", "cust-1", "Dana", 5, nil).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("r1", time.Now()))

		rv, err := repo.Create(ctx, "cust-1", input)
		require.NoError(t, err)
		assert.Equal(t, "r1", rv.ID)
		assert.Equal(t, "cust-1", rv.CustomerID)
	})

	t.Run("Second review for the same product", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO reviews`).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Create(ctx, "cust-1", input)
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
	})

	t.Run("Unknown product", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO reviews`).
			WillReturnError(&pq.Error{Code: "23503"})

		_, err := repo.Create(ctx, "cust-1", input)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListAndCounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`FROM reviews\s+WHERE product_id = \$1`).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "customer_id", "customer_name", "rating", "comment", "created_at"}).
			AddRow("r1", "p1", "c1", "Dana", 4, "Moist and rich", time.Now()).
			AddRow("r2", "p1", "c2", "Ari", 5, nil, time.Now()))

	reviews, err := repo.ListByProduct(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Moist and rich", *reviews[0].Comment)
	assert.Nil(t, reviews[1].Comment)

	mock.ExpectQuery(`SELECT rating, COUNT\(\*\)`).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"rating", "count"}).AddRow(4, 1).AddRow(5, 3))

	counts, err := repo.RatingCounts(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, map[int]int{4: 1, 5: 3}, counts)

	mock.ExpectExec(`DELETE FROM reviews WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, "ghost"), ErrReviewNotFound)
}
