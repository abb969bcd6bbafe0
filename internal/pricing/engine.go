package pricing

import "math"

// Tax is a flat rate; shipping is a small fixed table. Both are frozen onto
// the order at creation time, so later changes here never reprice old orders.
const (
	TaxRate = 0.10

	ShippingMethodPickup   = "pickup"
	ShippingMethodStandard = "standard"

	shippingCostPickup   = 0.0
	shippingCostStandard = 10.0
	shippingCostExpress  = 25.0
)

// Line is the priced quantity an order item contributes to the subtotal.
type Line struct {
	UnitPrice float64
	Quantity  int
}

// Quote carries the four monetary fields of an order.
type Quote struct {
	Subtotal     float64 `json:"subtotal"`
	Tax          float64 `json:"tax"`
	ShippingCost float64 `json:"shipping_cost"`
	Total        float64 `json:"total"`
}

type Engine struct{}

func NewEngine() Engine {
	return Engine{}
}

// Quote computes subtotal, tax, shipping and total for the given lines and
// shipping method. All four values are rounded to cents.
func (e Engine) Quote(lines []Line, shippingMethod string) Quote {
	subtotal := 0.0
	for _, l := range lines {
		subtotal += l.UnitPrice * float64(l.Quantity)
	}
	subtotal = roundCents(subtotal)

	tax := roundCents(subtotal * TaxRate)
	shipping := e.ShippingCost(shippingMethod)

	return Quote{
		Subtotal:     subtotal,
		Tax:          tax,
		ShippingCost: shipping,
		Total:        roundCents(subtotal + tax + shipping),
	}
}

// ShippingCost maps a shipping method to its flat cost. Unknown methods fall
// through to the express tier.
func (e Engine) ShippingCost(method string) float64 {
	switch method {
	case ShippingMethodPickup:
		return shippingCostPickup
	case ShippingMethodStandard:
		return shippingCostStandard
	default:
		return shippingCostExpress
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
