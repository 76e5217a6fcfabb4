package favorite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

type Repository interface {
	Add(ctx context.Context, customerID, productID string) error
	Remove(ctx context.Context, customerID, productID string) error
	List(ctx context.Context, customerID string) ([]Favorite, error)
	ProductIDs(ctx context.Context, customerID string) ([]string, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Add saves a favorite. Saving one that already exists succeeds.
func (r *repository) Add(ctx context.Context, customerID, productID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (customer_id, product_id) VALUES ($1, $2)`,
		customerID, productID,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return nil
		case pqForeignKeyViolation:
			return ErrProductNotFound
		}
	}
	return err
}

func (r *repository) Remove(ctx context.Context, customerID, productID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE customer_id = $1 AND product_id = $2`,
		customerID, productID,
	)
	return err
}

func (r *repository) List(ctx context.Context, customerID string) ([]Favorite, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT f.customer_id, f.product_id, p.title, p.price, p.image_url, p.in_stock, f.created_at
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		WHERE f.customer_id = $1
		ORDER BY f.created_at DESC
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := []Favorite{}
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.CustomerID, &f.ProductID, &f.Title, &f.Price, &f.ImageURL, &f.InStock, &f.CreatedAt); err != nil {
			return nil, err
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

func (r *repository) ProductIDs(ctx context.Context, customerID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id FROM favorites WHERE customer_id = $1`,
		customerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
