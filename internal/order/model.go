package order

import (
	"time"

	"shopfront-be/internal/cart"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Item is a cart line snapshotted at checkout, with the product's display
// name frozen in. It is never re-derived from live catalog data.
type Item struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   float64         `json:"price"`
	Variation   *cart.Variation `json:"variation,omitempty"`
}

type ShippingInfo struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// Order is immutable after creation except for status, payment_status,
// payment_session_id and updated_at.
type Order struct {
	ID               string        `json:"id"`
	OrderNumber      string        `json:"order_number"`
	UserID           *string       `json:"user_id,omitempty"`
	Items            []Item        `json:"items"`
	ShippingInfo     ShippingInfo  `json:"shipping_info"`
	ShippingMethod   string        `json:"shipping_method"`
	Subtotal         float64       `json:"subtotal"`
	Tax              float64       `json:"tax"`
	ShippingCost     float64       `json:"shipping_cost"`
	Total            float64       `json:"total"`
	Status           Status        `json:"status"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	PaymentSessionID *string       `json:"payment_session_id,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
