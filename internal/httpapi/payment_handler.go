package httpapi

import (
	"encoding/json"
	"net/http"

	"shopfront-be/internal/payment"
	"shopfront-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type PaymentHandler struct {
	Reconciler payment.Reconciler
}

func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OrderID string `json:"order_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}
	if body.OrderID == "" {
		utils.WriteJSONError(w, "order_id is required", http.StatusBadRequest)
		return
	}

	sess, err := h.Reconciler.CreateCheckoutSession(r.Context(), body.OrderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, sess)
}

// Status polls the provider and reports the session's status. The poll
// itself reconciles, so the storefront's success-page check is enough to
// mark an order paid even if the webhook never arrives.
func (h *PaymentHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.Reconciler.PollStatus(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]payment.Status{"payment_status": status})
}
