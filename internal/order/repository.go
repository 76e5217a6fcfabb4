package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bakery-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o NewOrder) (string, error)
	CreateItems(ctx context.Context, orderID string, items []NewItem) error
	List(ctx context.Context, filter ListFilter) ([]Order, error)
	ItemsByOrderIDs(ctx context.Context, orderIDs []string) (map[string][]Item, error)
	Get(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, from, to Status) error
	UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	id, order_number, customer_id, customer_name, customer_email, customer_phone,
	delivery_address, delivery_date, special_instructions, total_amount,
	status, payment_status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.CustomerID,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&o.DeliveryAddress,
		&o.DeliveryDate,
		&o.SpecialInstructions,
		&o.TotalAmount,
		&o.Status,
		&o.PaymentStatus,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}

// Create inserts a pending, unpaid order and returns its generated id.
func (r *repository) Create(ctx context.Context, o NewOrder) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (
			order_number, customer_id, customer_name, customer_email, customer_phone,
			delivery_address, delivery_date, special_instructions, total_amount,
			status, payment_status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id
	`,
		o.OrderNumber,
		o.CustomerID,
		o.CustomerName,
		o.CustomerEmail,
		o.CustomerPhone,
		o.DeliveryAddress,
		o.DeliveryDate,
		o.SpecialInstructions,
		o.TotalAmount,
		StatusPending,
		PaymentPending,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return "", ErrDuplicateOrderNumber
		}
		return "", err
	}
	return id, nil
}

// CreateItems writes all lines of an order in one statement.
func (r *repository) CreateItems(ctx context.Context, orderID string, items []NewItem) error {
	if len(items) == 0 {
		return ErrNoItems
	}

	values := make([]string, 0, len(items))
	args := make([]any, 0, len(items)*6)
	for i, it := range items {
		n := i * 6
		values = append(values, fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d)", n+1, n+2, n+3, n+4, n+5, n+6))
		args = append(args, orderID, it.ProductID, it.ProductName, it.Variant, it.Quantity, it.UnitPrice)
	}

	query := `
		INSERT INTO order_items (order_id, product_id, product_name, variant, quantity, unit_price)
		VALUES ` + strings.Join(values, ",")

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "ListOrders"))

	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []any{}
	argIndex := 1

	if filter.CustomerID != nil {
		query += fmt.Sprintf(" AND customer_id = $%d", argIndex)
		args = append(args, *filter.CustomerID)
		argIndex++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	if filter.Since != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIndex)
		args = append(args, *filter.Since)
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, filter.Limit, (page-1)*filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

func (r *repository) ItemsByOrderIDs(ctx context.Context, orderIDs []string) (map[string][]Item, error) {
	result := make(map[string][]Item, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, variant, quantity, unit_price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID,
			&it.OrderID,
			&it.ProductID,
			&it.ProductName,
			&it.Variant,
			&it.Quantity,
			&it.UnitPrice,
		); err != nil {
			return nil, err
		}
		result[it.OrderID] = append(result[it.OrderID], it)
	}

	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateStatus moves an order from one status to another. It only applies while the order
// is still in from; otherwise the transition is rejected.
func (r *repository) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		string(to), id, string(from),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) error {
	return r.updateColumn(ctx, "payment_status", id, string(status))
}

func (r *repository) updateColumn(ctx context.Context, column, id, value string) error {
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE orders SET %s = $1, updated_at = NOW() WHERE id = $2`, column),
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
		return ErrOrderNotFound
	}
	return nil
}
