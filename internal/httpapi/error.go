package httpapi

import (
	"errors"
	"net/http"

	"shopfront-be/internal/cart"
	"shopfront-be/internal/catalog"
	"shopfront-be/internal/identity"
	"shopfront-be/internal/logger"
	"shopfront-be/internal/order"
	"shopfront-be/internal/payment"
	"shopfront-be/internal/utils"

	"go.uber.org/zap"
)

// writeError maps domain error kinds to HTTP statuses. This is the only
// place that translation happens; services below speak sentinel errors.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, identity.ErrIdentityRequired),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrMissingProduct),
		errors.Is(err, order.ErrInvalidStatus):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)

	case errors.Is(err, order.ErrForbidden):
		utils.WriteJSONError(w, err.Error(), http.StatusForbidden)

	case errors.Is(err, cart.ErrCartNotFound),
		errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, payment.ErrTransactionNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)

	case errors.Is(err, payment.ErrInvalidSignature):
		utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)

	case errors.Is(err, payment.ErrUpstreamPayment):
		utils.WriteJSONError(w, "payment provider unavailable", http.StatusBadGateway)

	default:
		logger.FromCtx(r.Context()).Error("unhandled error", zap.Error(err))
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
