package order

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"shopfront-be/internal/cart"
	"shopfront-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrder(ctx context.Context, o *Order) error
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	ListAll(ctx context.Context, status *Status, limit, offset int) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) error
	CountOrders(ctx context.Context) (int64, error)
	PaidRevenue(ctx context.Context) (float64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	id, order_number, user_id,
	first_name, last_name, email, street, city, state, postal_code, country, phone,
	shipping_method, subtotal, tax, shipping_cost, total,
	status, payment_status, payment_session_id,
	created_at, updated_at
`

// CreateOrder persists the order and its item snapshots in one transaction.
// A failure on any item aborts the whole creation.
func (r *repository) CreateOrder(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.String("order_id", o.ID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			id, order_number, user_id,
			first_name, last_name, email, street, city, state, postal_code, country, phone,
			shipping_method, subtotal, tax, shipping_cost, total,
			status, payment_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at, updated_at
	`,
		o.ID, o.OrderNumber, o.UserID,
		o.ShippingInfo.FirstName, o.ShippingInfo.LastName, o.ShippingInfo.Email,
		o.ShippingInfo.Street, o.ShippingInfo.City, o.ShippingInfo.State,
		o.ShippingInfo.PostalCode, o.ShippingInfo.Country, o.ShippingInfo.Phone,
		o.ShippingMethod, o.Subtotal, o.Tax, o.ShippingCost, o.Total,
		o.Status, o.PaymentStatus,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for _, item := range o.Items {
		varName, varValue, priceAdj := "", "", 0.0
		if item.Variation != nil {
			varName = item.Variation.Name
			varValue = item.Variation.Value
			priceAdj = item.Variation.PriceAdjustment
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (
				id, order_id, product_id, product_name,
				variation_name, variation_value, price_adjustment,
				quantity, unit_price
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, uuid.New().String(), o.ID, item.ProductID, item.ProductName,
			varName, varValue, priceAdj, item.Quantity, item.UnitPrice,
		)
		if err != nil {
			log.Error("failed to insert order item",
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("order created",
		zap.String("order_number", o.OrderNumber),
		zap.Float64("total", o.Total),
	)

	return nil
}

func (r *repository) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, orderID)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectOrders(ctx, rows)
}

func (r *repository) ListAll(ctx context.Context, status *Status, limit, offset int) ([]*Order, error) {
	where := ""
	args := []any{limit, offset}
	if status != nil {
		where = "WHERE status = $3"
		args = append(args, *status)
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		` + where + `
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectOrders(ctx, rows)
}

// UpdateStatus is an unconditional overwrite; any status may follow any
// status.
func (r *repository) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, orderID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *repository) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}

func (r *repository) PaidRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total), 0)
		FROM orders
		WHERE payment_status = 'paid'
	`).Scan(&total)
	return total, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID,
		&o.ShippingInfo.FirstName, &o.ShippingInfo.LastName, &o.ShippingInfo.Email,
		&o.ShippingInfo.Street, &o.ShippingInfo.City, &o.ShippingInfo.State,
		&o.ShippingInfo.PostalCode, &o.ShippingInfo.Country, &o.ShippingInfo.Phone,
		&o.ShippingMethod, &o.Subtotal, &o.Tax, &o.ShippingCost, &o.Total,
		&o.Status, &o.PaymentStatus, &o.PaymentSessionID,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) collectOrders(ctx context.Context, rows *sql.Rows) ([]*Order, error) {
	orders := make([]*Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		items, err := r.loadItems(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}

	return orders, nil
}

func (r *repository) loadItems(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, product_name, variation_name, variation_value,
		       price_adjustment, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var (
			item              Item
			varName, varValue string
			priceAdj          float64
		)
		if err := rows.Scan(
			&item.ProductID, &item.ProductName, &varName, &varValue,
			&priceAdj, &item.Quantity, &item.UnitPrice,
		); err != nil {
			return nil, err
		}

		if varName != "" || varValue != "" {
			v := cart.Variation{Name: varName, Value: varValue, PriceAdjustment: priceAdj}
			item.Variation = &v
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

// ParseStatus validates a raw status value from the transport layer.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
