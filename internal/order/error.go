package order

import "errors"

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrInvalidTransition    = errors.New("order status transition not allowed")
	ErrNoItems              = errors.New("order has no items")
	ErrDuplicateOrderNumber = errors.New("order number already in use")
)
