package catalog

// Product is the slice of the catalog this service reads: the display name
// frozen onto order items at creation, plus the base price for reference.
type Product struct {
	ID        string
	Name      string
	BasePrice float64
}
