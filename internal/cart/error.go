package cart

import "errors"

var (
	// -- Validation & Input --
	ErrMissingItemID   = errors.New("cart item id is required")
	ErrInvalidQuantity = errors.New("invalid cart quantity")
	ErrInvalidPrice    = errors.New("invalid cart item price")
	ErrInvalidDeviceID = errors.New("invalid device id")

	// -- Storage --
	ErrLoadCart    = errors.New("failed to load cart")
	ErrPersistCart = errors.New("failed to persist cart")
)
