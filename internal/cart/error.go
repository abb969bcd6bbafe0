package cart

import "errors"

var (
	// -- Resource state --
	ErrCartNotFound = errors.New("cart not found")

	// -- Validation & input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")
	ErrMissingProduct  = errors.New("product id is required")
)
