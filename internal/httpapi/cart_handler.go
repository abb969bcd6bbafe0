package httpapi

import (
	"encoding/json"
	"net/http"

	"shopfront-be/internal/cart"
	"shopfront-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	Carts cart.Service
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.Carts.Get(r.Context(), identityFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, c)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var line cart.Line
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		utils.WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	c, err := h.Carts.AddItem(r.Context(), identityFrom(r), line)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, c)
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	ident := identityFrom(r)
	if err := h.Carts.SetQuantity(r.Context(), ident, productID, body.Quantity); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.Carts.Get(r.Context(), ident)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, c)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	ident := identityFrom(r)
	if err := h.Carts.RemoveItem(r.Context(), ident, productID); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.Carts.Get(r.Context(), ident)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, c)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Carts.Clear(r.Context(), identityFrom(r)); err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
