package favorite

import "errors"

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrMissingProductID = errors.New("product id is required")
	ErrProductNotFound  = errors.New("product not found")
)
