package checkout

import "errors"

// Validation failures, reported in the order they are checked.
var (
	ErrNotAuthenticated     = errors.New("please sign in to place an order")
	ErrCartEmpty            = errors.New("your cart is empty")
	ErrPhoneRequired        = errors.New("phone number is required")
	ErrAddressRequired      = errors.New("delivery address is required")
	ErrDeliveryDateRequired = errors.New("delivery date is required")
	ErrInvalidDeliveryDate  = errors.New("delivery date must be YYYY-MM-DD")
)

// ErrOrderFailed wraps a failed order insert.
var ErrOrderFailed = errors.New("failed to place order")

// IsValidation reports whether err is a customer-correctable validation failure.
func IsValidation(err error) bool {
	for _, v := range []error{
		ErrNotAuthenticated,
		ErrCartEmpty,
		ErrPhoneRequired,
		ErrAddressRequired,
		ErrDeliveryDateRequired,
		ErrInvalidDeliveryDate,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
