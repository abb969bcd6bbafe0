package payment

import (
	"context"

	"shopfront-be/internal/logger"
	"shopfront-be/internal/metrics"
	"shopfront-be/internal/order"

	"go.uber.org/zap"
)

// Reconciler owns the session lifecycle: it opens checkout sessions and
// applies status reports from both the webhook and the polling path.
type Reconciler interface {
	CreateCheckoutSession(ctx context.Context, orderID string) (*Session, error)
	PollStatus(ctx context.Context, sessionID string) (Status, error)
	Apply(ctx context.Context, ev Event) (Outcome, error)
}

type reconciler struct {
	repo     Repository
	orders   order.Repository
	gateway  Gateway
	currency string
	stats    *metrics.Reconciliation
}

func NewReconciler(repo Repository, orders order.Repository, gateway Gateway, stats *metrics.Reconciliation) Reconciler {
	return &reconciler{
		repo:     repo,
		orders:   orders,
		gateway:  gateway,
		currency: "usd",
		stats:    stats,
	}
}

// CreateCheckoutSession opens a fresh provider session for the order's
// total and records the pending transaction. Calling it again for the same
// order opens another session; only one of them will ever reconcile the
// order to paid.
func (s *reconciler) CreateCheckoutSession(ctx context.Context, orderID string) (*Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateCheckoutSession"),
		zap.String("order_id", orderID),
	)

	o, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	sess, err := s.gateway.CreateSession(ctx, o.OrderNumber, o.Total, s.currency)
	if err != nil {
		return nil, err
	}

	t := &Transaction{
		OrderID:   o.ID,
		SessionID: sess.ID,
		Amount:    o.Total,
		Currency:  s.currency,
		Status:    StatusPending,
	}
	if err := s.repo.SaveTransaction(ctx, t); err != nil {
		log.Error("failed to save transaction", zap.String("session_id", sess.ID), zap.Error(err))
		return nil, err
	}

	if err := s.repo.StampOrderSession(ctx, o.ID, sess.ID); err != nil {
		log.Error("failed to stamp order session", zap.Error(err))
		return nil, err
	}

	log.Info("checkout session opened",
		zap.String("session_id", sess.ID),
		zap.Float64("amount", o.Total),
	)

	return sess, nil
}

// PollStatus asks the provider for the session's current status and feeds
// the answer through the same reconciliation the webhook uses.
func (s *reconciler) PollStatus(ctx context.Context, sessionID string) (Status, error) {
	if _, err := s.repo.GetBySessionID(ctx, sessionID); err != nil {
		return "", err
	}

	status, err := s.gateway.GetSessionStatus(ctx, sessionID)
	if err != nil {
		return "", err
	}

	if _, err := s.Apply(ctx, Event{SessionID: sessionID, Status: status}); err != nil {
		return "", err
	}

	return status, nil
}

// Apply reconciles one status report. Only a paid report writes: it flips
// the transaction and its order exactly once, and a replay is a duplicate,
// never an error. Failed and pending reports are informational; a stale
// session expiring must not touch an order another session may have paid.
func (s *reconciler) Apply(ctx context.Context, ev Event) (Outcome, error) {
	timer := metrics.StartTimer()
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Apply"),
		zap.String("session_id", ev.SessionID),
		zap.String("status", string(ev.Status)),
	)

	if ev.Status != StatusPaid {
		s.stats.Ignored.Inc()
		log.Debug("status report ignored")
		return OutcomeIgnored, nil
	}

	orderID, applied, err := s.repo.ReconcilePaid(ctx, ev.SessionID)
	if err != nil {
		return "", err
	}
	if !applied {
		s.stats.Duplicate.Inc()
		log.Info("paid report already applied", zap.Duration("took", timer.Duration()))
		return OutcomeDuplicate, nil
	}

	s.stats.Applied.Inc()
	log.Info("order marked paid",
		zap.String("order_id", orderID),
		zap.Duration("took", timer.Duration()),
	)
	return OutcomeApplied, nil
}
