package review

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type Repository interface {
	Create(ctx context.Context, customerID string, input NewReviewInput) (Review, error)
	ListByProduct(ctx context.Context, productID string) ([]Review, error)
	RatingCounts(ctx context.Context, productID string) (map[int]int, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, customerID string, input NewReviewInput) (Review, error) {
	rv := Review{
		ProductID:    input.ProductID,
		CustomerID:   customerID,
		CustomerName: input.CustomerName,
		Rating:       input.Rating,
		Comment:      input.Comment,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reviews (product_id, customer_id, customer_name, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, input.ProductID, customerID, input.CustomerName, input.Rating, input.Comment).
		Scan(&rv.ID, &rv.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return Review{}, ErrAlreadyReviewed
		case "23503":
			return Review{}, ErrProductNotFound
		}
	}
	if err != nil {
		return Review{}, err
	}
	return rv, nil
}

func (r *repository) ListByProduct(ctx context.Context, productID string) ([]Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, customer_id, customer_name, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.CustomerID, &rv.CustomerName, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *repository) RatingCounts(ctx context.Context, productID string) (map[int]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT rating, COUNT(*)
		FROM reviews
		WHERE product_id = $1
		GROUP BY rating
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[int]int{}
	for rows.Next() {
		var rating, n int
		if err := rows.Scan(&rating, &n); err != nil {
			return nil, err
		}
		counts[rating] = n
	}
	return counts, rows.Err()
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReviewNotFound
	}
	return nil
}
