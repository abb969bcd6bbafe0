package cart

import "time"

// Variation is a selected product option (e.g. Size=Large). Two lines belong
// to the same cart slot only when product id and variation both match;
// "no variation" is its own slot.
type Variation struct {
	Name            string  `json:"name"`
	Value           string  `json:"value"`
	PriceAdjustment float64 `json:"price_adjustment"`
}

type Line struct {
	ID        string     `json:"id"`
	ProductID string     `json:"product_id"`
	Variation *Variation `json:"variation,omitempty"`
	Quantity  int        `json:"quantity"`
	UnitPrice float64    `json:"price"`
	CreatedAt time.Time  `json:"created_at"`
}

type Cart struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"user_id,omitempty"`
	SessionID *string   `json:"session_id,omitempty"`
	Items     []Line    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// variationKey flattens the optional variation into the two columns the
// line-uniqueness index is built on.
func variationKey(v *Variation) (name, value string) {
	if v == nil {
		return "", ""
	}
	return v.Name, v.Value
}
