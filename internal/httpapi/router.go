package httpapi

import (
	"net/http"

	"shopfront-be/internal/cart"
	"shopfront-be/internal/catalog"
	"shopfront-be/internal/logger"
	"shopfront-be/internal/metrics"
	"shopfront-be/internal/middleware"
	"shopfront-be/internal/order"
	"shopfront-be/internal/payment"
	"shopfront-be/internal/payment/webhook"

	"github.com/go-chi/chi/v5"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Carts      cart.Service
	Orders     order.Service
	OrderRepo  order.Repository
	Catalog    catalog.Repository
	Reconciler payment.Reconciler
	Gateway    payment.Gateway
	Stats      *metrics.Reconciliation
	JWTSecret  []byte
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.Auth(d.JWTSecret))
	r.Use(middleware.RateLimit)

	cartH := &CartHandler{Carts: d.Carts}
	orderH := &OrderHandler{Orders: d.Orders}
	paymentH := &PaymentHandler{Reconciler: d.Reconciler}
	adminH := &AdminHandler{Orders: d.Orders, OrderRepo: d.OrderRepo, Catalog: d.Catalog, Stats: d.Stats}
	webhookH := webhook.NewHandler(d.Gateway, d.Reconciler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartH.Get)
			r.Delete("/", cartH.Clear)
			r.Post("/items", cartH.AddItem)
			r.Put("/items/{productID}", cartH.SetQuantity)
			r.Delete("/items/{productID}", cartH.RemoveItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderH.Create)
			r.Get("/", orderH.ListMine)
			r.Get("/{orderID}", orderH.Get)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/checkout", paymentH.CreateCheckout)
			r.Get("/status/{sessionID}", paymentH.Status)
		})

		r.Post("/webhook/stripe", webhookH.ServeHTTP)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/orders", adminH.ListOrders)
			r.Put("/orders/{orderID}/status", adminH.UpdateOrderStatus)
			r.Get("/analytics", adminH.Analytics)
		})
	})

	return r
}
