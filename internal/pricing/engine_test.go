package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngine_ShippingCost(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		method string
		want   float64
	}{
		{"pickup", 0.0},
		{"standard", 10.0},
		{"express", 25.0},
		{"overnight", 25.0},
		{"", 25.0},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			assert.Equal(t, tt.want, e.ShippingCost(tt.method))
		})
	}
}

func TestEngine_Quote(t *testing.T) {
	e := NewEngine()

	t.Run("Standard shipping", func(t *testing.T) {
		q := e.Quote([]Line{{UnitPrice: 50.0, Quantity: 2}}, "standard")

		assert.Equal(t, 100.0, q.Subtotal)
		assert.Equal(t, 10.0, q.Tax)
		assert.Equal(t, 10.0, q.ShippingCost)
		assert.Equal(t, 120.0, q.Total)
	})

	t.Run("Pickup has no shipping", func(t *testing.T) {
		q := e.Quote([]Line{{UnitPrice: 19.99, Quantity: 1}}, "pickup")

		assert.Equal(t, 19.99, q.Subtotal)
		assert.Equal(t, 2.0, q.Tax)
		assert.Equal(t, 0.0, q.ShippingCost)
		assert.Equal(t, 21.99, q.Total)
	})

	t.Run("Multiple lines sum", func(t *testing.T) {
		q := e.Quote([]Line{
			{UnitPrice: 10.0, Quantity: 3},
			{UnitPrice: 5.5, Quantity: 2},
		}, "overnight")

		assert.Equal(t, 41.0, q.Subtotal)
		assert.Equal(t, 4.1, q.Tax)
		assert.Equal(t, 25.0, q.ShippingCost)
		assert.Equal(t, 70.1, q.Total)
	})

	t.Run("Empty cart quotes shipping only", func(t *testing.T) {
		q := e.Quote(nil, "standard")

		assert.Equal(t, 0.0, q.Subtotal)
		assert.Equal(t, 0.0, q.Tax)
		assert.Equal(t, 10.0, q.ShippingCost)
		assert.Equal(t, 10.0, q.Total)
	})

	t.Run("Total is always the sum of its parts", func(t *testing.T) {
		q := e.Quote([]Line{{UnitPrice: 3.33, Quantity: 3}}, "standard")

		assert.Equal(t, q.Total, q.Subtotal+q.Tax+q.ShippingCost)
	})
}
