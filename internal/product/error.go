package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrNoFieldsUpdate  = errors.New("no fields to update")
	ErrForbidden       = errors.New("admin role required")
)
