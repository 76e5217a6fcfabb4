package review

import "errors"

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrMissingProductID = errors.New("product id is required")
	ErrAlreadyReviewed  = errors.New("you have already reviewed this product")
	ErrProductNotFound  = errors.New("product not found")
	ErrReviewNotFound   = errors.New("review not found")
)
