package payment

import (
	"context"
	"database/sql"
	"errors"

	"shopfront-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	SaveTransaction(ctx context.Context, t *Transaction) error
	GetBySessionID(ctx context.Context, sessionID string) (*Transaction, error)
	ReconcilePaid(ctx context.Context, sessionID string) (orderID string, applied bool, err error)
	StampOrderSession(ctx context.Context, orderID, sessionID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SaveTransaction(ctx context.Context, t *Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO payment_transactions (id, order_id, session_id, amount, currency, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, t.ID, t.OrderID, t.SessionID, t.Amount, t.Currency, t.Status).
		Scan(&t.CreatedAt, &t.UpdatedAt)
	return err
}

func (r *repository) GetBySessionID(ctx context.Context, sessionID string) (*Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, session_id, amount, currency, payment_status, created_at, updated_at
		FROM payment_transactions
		WHERE session_id = $1
	`, sessionID)

	var t Transaction
	err := row.Scan(&t.ID, &t.OrderID, &t.SessionID, &t.Amount, &t.Currency, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// ReconcilePaid flips the transaction pending -> paid and the linked order
// to paid/processing in one database transaction. The guarded UPDATE is the
// idempotency point: a second call for the same session matches zero rows
// and reports applied=false without touching the order.
func (r *repository) ReconcilePaid(ctx context.Context, sessionID string) (string, bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ReconcilePaid"),
		zap.String("session_id", sessionID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", false, err
	}
	defer tx.Rollback()

	var orderID string
	err = tx.QueryRowContext(ctx, `
		UPDATE payment_transactions
		SET payment_status = 'paid', updated_at = NOW()
		WHERE session_id = $1 AND payment_status = 'pending'
		RETURNING order_id
	`, sessionID).Scan(&orderID)

	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		if err := tx.QueryRowContext(ctx, `
			SELECT EXISTS (SELECT 1 FROM payment_transactions WHERE session_id = $1)
		`, sessionID).Scan(&exists); err != nil {
			return "", false, err
		}
		if !exists {
			return "", false, ErrTransactionNotFound
		}

		log.Info("reconciliation already applied")
		return "", false, tx.Commit()
	}
	if err != nil {
		log.Error("failed to flip transaction", zap.Error(err))
		return "", false, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE orders
		SET payment_status = 'paid', status = 'processing', updated_at = NOW()
		WHERE id = $1
	`, orderID)
	if err != nil {
		log.Error("failed to flip order", zap.String("order_id", orderID), zap.Error(err))
		return "", false, err
	}

	if err := tx.Commit(); err != nil {
		return "", false, err
	}

	log.Info("payment reconciled", zap.String("order_id", orderID))
	return orderID, true, nil
}

func (r *repository) StampOrderSession(ctx context.Context, orderID, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET payment_session_id = $1, updated_at = NOW()
		WHERE id = $2
	`, sessionID, orderID)
	return err
}
