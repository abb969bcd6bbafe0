package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"shopfront-be/internal/catalog"
	"shopfront-be/internal/metrics"
	"shopfront-be/internal/order"
	"shopfront-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	Orders    order.Service
	OrderRepo order.Repository
	Catalog   catalog.Repository
	Stats     *metrics.Reconciliation
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var status *order.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s, err := order.ParseStatus(raw)
		if err != nil {
			writeError(w, r, err)
			return
		}
		status = &s
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	orders, err := h.Orders.ListAll(r.Context(), status, limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	status, err := order.ParseStatus(body.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Orders.UpdateStatus(r.Context(), chi.URLParam(r, "orderID"), status); err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	totalOrders, err := h.OrderRepo.CountOrders(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	revenue, err := h.OrderRepo.PaidRevenue(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	totalProducts, err := h.Catalog.CountProducts(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	recent, err := h.Orders.ListAll(ctx, nil, 5, 0)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"total_orders":   totalOrders,
		"total_revenue":  revenue,
		"total_products": totalProducts,
		"recent_orders":  recent,
		"reconciliation": h.Stats.Snapshot(),
	})
}
