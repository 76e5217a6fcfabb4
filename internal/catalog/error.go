package catalog

import "errors"

var (
	ErrFlavorRequired   = errors.New("please choose a flavor")
	ErrSizeRequired     = errors.New("please choose a size")
	ErrQuantityRequired = errors.New("please choose a quantity")
	ErrUnknownOption    = errors.New("selected option is not available for this product")
	ErrMissingProductID = errors.New("product id is required")
	ErrNegativePrice    = errors.New("configured price cannot be negative")
)
