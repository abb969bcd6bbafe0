package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopfront-be/internal/identity"
	"shopfront-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	FindCart(ctx context.Context, ident identity.Identity) (*Cart, error)
	CreateCart(ctx context.Context, ident identity.Identity) (*Cart, error)
	AddLine(ctx context.Context, cartID string, line Line) error
	SetQuantity(ctx context.Context, cartID, productID string, quantity int) error
	RemoveProduct(ctx context.Context, cartID, productID string) error
	ClearLines(ctx context.Context, cartID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// identityPredicate resolves which column keys the cart: the authenticated
// user id takes precedence over the anonymous session id.
func identityPredicate(ident identity.Identity) (column, value string) {
	if ident.Authenticated() {
		return "user_id", ident.UserID
	}
	return "session_id", ident.SessionID
}

func (r *repository) FindCart(ctx context.Context, ident identity.Identity) (*Cart, error) {
	column, value := identityPredicate(ident)

	query := fmt.Sprintf(`
	SELECT id, user_id, session_id, updated_at
	FROM carts
	WHERE %s = $1
	`, column)

	var c Cart
	err := r.db.QueryRowContext(ctx, query, value).
		Scan(&c.ID, &c.UserID, &c.SessionID, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	lines, err := r.loadLines(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = lines

	return &c, nil
}

func (r *repository) loadLines(ctx context.Context, cartID string) ([]Line, error) {
	query := `
	SELECT id, product_id, variation_name, variation_value, price_adjustment,
	       quantity, unit_price, created_at
	FROM cart_lines
	WHERE cart_id = $1
	ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]Line, 0)
	for rows.Next() {
		var (
			l                 Line
			varName, varValue string
			priceAdj          float64
		)
		if err := rows.Scan(
			&l.ID, &l.ProductID, &varName, &varValue, &priceAdj,
			&l.Quantity, &l.UnitPrice, &l.CreatedAt,
		); err != nil {
			return nil, err
		}

		if varName != "" || varValue != "" {
			l.Variation = &Variation{Name: varName, Value: varValue, PriceAdjustment: priceAdj}
		}

		lines = append(lines, l)
	}

	return lines, rows.Err()
}

func (r *repository) CreateCart(ctx context.Context, ident identity.Identity) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateCart"),
	)

	var userID, sessionID *string
	if ident.Authenticated() {
		userID = &ident.UserID
	} else {
		sessionID = &ident.SessionID
	}

	query := `
	INSERT INTO carts (id, user_id, session_id)
	VALUES ($1, $2, $3)
	RETURNING id, user_id, session_id, updated_at
	`

	var c Cart
	err := r.db.QueryRowContext(ctx, query, uuid.New().String(), userID, sessionID).
		Scan(&c.ID, &c.UserID, &c.SessionID, &c.UpdatedAt)
	if err != nil {
		log.Error("failed to create cart", zap.Error(err))
		return nil, err
	}
	c.Items = make([]Line, 0)

	log.Info("cart created", zap.String("cart_id", c.ID))

	return &c, nil
}

// AddLine merges the line into the cart: a line with the same product and
// variation gets its quantity incremented, anything else is appended. The
// merge is a single conditional insert, so concurrent adds never lose
// updates.
func (r *repository) AddLine(ctx context.Context, cartID string, line Line) error {
	varName, varValue := variationKey(line.Variation)

	var priceAdj float64
	if line.Variation != nil {
		priceAdj = line.Variation.PriceAdjustment
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO cart_lines (
			id, cart_id, product_id,
			variation_name, variation_value, price_adjustment,
			quantity, unit_price
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (cart_id, product_id, variation_name, variation_value)
		DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
	`, uuid.New().String(), cartID, line.ProductID,
		varName, varValue, priceAdj,
		line.Quantity, line.UnitPrice,
	)
	if err != nil {
		return err
	}

	if err := touchCart(ctx, tx, cartID); err != nil {
		return err
	}

	return tx.Commit()
}

// SetQuantity overwrites the quantity of the earliest-added line for the
// product, regardless of variation. A cart without that product is a no-op.
func (r *repository) SetQuantity(ctx context.Context, cartID, productID string, quantity int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE cart_lines
		SET quantity = $1
		WHERE id = (
			SELECT id FROM cart_lines
			WHERE cart_id = $2 AND product_id = $3
			ORDER BY created_at, id
			LIMIT 1
		)
	`, quantity, cartID, productID)
	if err != nil {
		return err
	}

	if err := touchCart(ctx, tx, cartID); err != nil {
		return err
	}

	return tx.Commit()
}

// RemoveProduct deletes every variation of the product from the cart.
func (r *repository) RemoveProduct(ctx context.Context, cartID, productID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM cart_lines
		WHERE cart_id = $1 AND product_id = $2
	`, cartID, productID)
	if err != nil {
		return err
	}

	if err := touchCart(ctx, tx, cartID); err != nil {
		return err
	}

	return tx.Commit()
}

// ClearLines empties the cart but keeps the cart record.
func (r *repository) ClearLines(ctx context.Context, cartID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM cart_lines
		WHERE cart_id = $1
	`, cartID)
	if err != nil {
		return err
	}

	if err := touchCart(ctx, tx, cartID); err != nil {
		return err
	}

	return tx.Commit()
}

func touchCart(ctx context.Context, tx *sql.Tx, cartID string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE carts
		SET updated_at = NOW()
		WHERE id = $1
	`, cartID)
	return err
}
