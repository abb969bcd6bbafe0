package httpapi

import (
	"encoding/json"
	"net/http"

	"shopfront-be/internal/order"
	"shopfront-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	Orders order.Service
}

// Create accepts checkout from both authenticated users and guests; a guest
// order simply carries no user id.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input order.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}
	if len(input.Items) == 0 {
		utils.WriteJSONError(w, "order must contain at least one item", http.StatusBadRequest)
		return
	}

	var userID *string
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		userID = &id
	}

	o, err := h.Orders.Create(r.Context(), userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	orders, err := h.Orders.ListMine(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	isAdmin := utils.IsAdminFromContext(r.Context())
	if !ok && !isAdmin {
		utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	o, err := h.Orders.Get(r.Context(), chi.URLParam(r, "orderID"), userID, isAdmin)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}
