package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bakery-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, opts ListOptions) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Titles(ctx context.Context) ([]string, error)
	Create(ctx context.Context, input NewProductInput) (Product, error)
	Update(ctx context.Context, input UpdateProductInput) (Product, error)
	SetStock(ctx context.Context, id string, inStock bool) error
	SetOffer(ctx context.Context, id string, isOffer bool) error
	Stats(ctx context.Context) (StockStats, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, title, description, category, price, image_url, in_stock, is_offer, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Category,
		&p.Price,
		&p.ImageURL,
		&p.InStock,
		&p.IsOffer,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]Product, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "ListProducts"))

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	argIndex := 1

	// ---------- FILTERING ----------
	if opts.Category != nil && *opts.Category != "" {
		query += fmt.Sprintf(" AND LOWER(category) = $%d", argIndex)
		args = append(args, normalizeCategory(*opts.Category))
		argIndex++
	}

	if opts.Search != nil && strings.TrimSpace(*opts.Search) != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+strings.TrimSpace(*opts.Search)+"%")
		argIndex++
	}

	if opts.InStock != nil {
		query += fmt.Sprintf(" AND in_stock = $%d", argIndex)
		args = append(args, *opts.InStock)
		argIndex++
	}

	if opts.OnlyOffers {
		query += " AND is_offer = TRUE"
	}

	// ---------- PAGINATION ----------
	offset := (opts.Page - 1) * opts.Limit
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, opts.Limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Titles(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT title FROM products ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		titles = append(titles, t)
	}
	return titles, rows.Err()
}

func (r *repository) Create(ctx context.Context, input NewProductInput) (Product, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (title, description, category, price, image_url, in_stock, is_offer)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+productColumns,
		input.Title,
		input.Description,
		normalizeCategory(input.Category),
		input.Price,
		input.ImageURL,
		input.InStock,
		input.IsOffer,
	)
	return scanProduct(row)
}

func (r *repository) Update(ctx context.Context, input UpdateProductInput) (Product, error) {
	sets := []string{}
	args := []any{}
	argIndex := 1

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if input.Title != nil {
		add("title", strings.TrimSpace(*input.Title))
	}
	if input.Description != nil {
		add("description", *input.Description)
	}
	if input.Category != nil {
		add("category", normalizeCategory(*input.Category))
	}
	if input.Price != nil {
		add("price", *input.Price)
	}
	if input.ImageURL != nil {
		add("image_url", *input.ImageURL)
	}

	query := fmt.Sprintf(
		`UPDATE products SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), argIndex, productColumns,
	)
	args = append(args, input.ID)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *repository) SetStock(ctx context.Context, id string, inStock bool) error {
	return r.setFlag(ctx, "in_stock", id, inStock)
}

func (r *repository) SetOffer(ctx context.Context, id string, isOffer bool) error {
	return r.setFlag(ctx, "is_offer", id, isOffer)
}

func (r *repository) setFlag(ctx context.Context, column, id string, value bool) error {
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE products SET %s = $1, updated_at = NOW() WHERE id = $2`, column),
		value, id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) Stats(ctx context.Context) (StockStats, error) {
	var s StockStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE in_stock),
			COUNT(*) FILTER (WHERE NOT in_stock),
			COUNT(*) FILTER (WHERE is_offer)
		FROM products
	`).Scan(&s.Total, &s.InStock, &s.OutOfStock, &s.Offers)
	return s, err
}
