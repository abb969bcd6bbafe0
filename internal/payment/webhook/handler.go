package webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"shopfront-be/internal/logger"
	"shopfront-be/internal/payment"
	"shopfront-be/internal/utils"

	"go.uber.org/zap"
)

// stripeEvent is the slice of the provider's event envelope we care about.
type stripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID            string `json:"id"`
			PaymentStatus string `json:"payment_status"`
		} `json:"object"`
	} `json:"data"`
}

type Handler struct {
	Gateway    payment.Gateway
	Reconciler payment.Reconciler
}

func NewHandler(gateway payment.Gateway, reconciler payment.Reconciler) *Handler {
	return &Handler{
		Gateway:    gateway,
		Reconciler: reconciler,
	}
}

// ServeHTTP verifies the callback signature, then feeds the session status
// into reconciliation. Only paid reports write; expiry and failure events
// pass through as informational. Unknown event types and replays are
// acknowledged so the provider stops retrying.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.WriteJSONError(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Gateway.VerifyWebhook(r.Header.Get("Stripe-Signature"), body); err != nil {
		log.Warn("webhook signature rejected", zap.Error(err))
		utils.WriteJSONError(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var ev stripeEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		utils.WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	log = log.With(
		zap.String("event_id", ev.ID),
		zap.String("event_type", ev.Type),
		zap.String("session_id", ev.Data.Object.ID),
	)

	var status payment.Status
	switch ev.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		if ev.Data.Object.PaymentStatus != "paid" {
			// completed but unpaid (async methods); wait for the
			// succeeded event
			w.WriteHeader(http.StatusOK)
			return
		}
		status = payment.StatusPaid
	case "checkout.session.expired", "checkout.session.async_payment_failed":
		status = payment.StatusFailed
	default:
		log.Debug("ignoring webhook event")
		w.WriteHeader(http.StatusOK)
		return
	}

	outcome, err := h.Reconciler.Apply(r.Context(), payment.Event{
		SessionID: ev.Data.Object.ID,
		Status:    status,
	})
	if errors.Is(err, payment.ErrTransactionNotFound) {
		// session opened elsewhere, nothing to reconcile; acknowledge
		// so the provider stops retrying
		log.Warn("webhook for unknown session")
		w.WriteHeader(http.StatusOK)
		return
	}
	if err != nil {
		log.Error("failed to reconcile webhook", zap.Error(err))
		utils.WriteJSONError(w, "failed to process event", http.StatusInternalServerError)
		return
	}

	log.Info("webhook processed", zap.String("outcome", string(outcome)))
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
