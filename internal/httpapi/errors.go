package httpapi

import (
	"errors"
	"net/http"

	"bakery-be/internal/analytics"
	"bakery-be/internal/cart"
	"bakery-be/internal/catalog"
	"bakery-be/internal/chat"
	"bakery-be/internal/checkout"
	"bakery-be/internal/favorite"
	"bakery-be/internal/giftcard"
	"bakery-be/internal/logger"
	"bakery-be/internal/order"
	"bakery-be/internal/product"
	"bakery-be/internal/review"
	"bakery-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	ErrDeviceRequired = errors.New("X-Device-ID header is required")
	ErrOutOfStock     = errors.New("product is out of stock")
	ErrBadRequest     = errors.New("invalid request body")
)

type errorMapping struct {
	err    error
	status int
}

// errorStatuses is checked in order; the first errors.Is match wins.
var errorStatuses = []errorMapping{
	// 401
	{checkout.ErrNotAuthenticated, http.StatusUnauthorized},
	{order.ErrUnauthorized, http.StatusUnauthorized},
	{favorite.ErrUnauthorized, http.StatusUnauthorized},
	{review.ErrUnauthorized, http.StatusUnauthorized},
	{giftcard.ErrUnauthorized, http.StatusUnauthorized},
	{chat.ErrUnauthorized, http.StatusUnauthorized},
	{user.ErrUnauthorized, http.StatusUnauthorized},
	{user.ErrInvalidCredentials, http.StatusUnauthorized},

	// 403
	{product.ErrForbidden, http.StatusForbidden},
	{order.ErrForbidden, http.StatusForbidden},
	{analytics.ErrForbidden, http.StatusForbidden},
	{chat.ErrForbidden, http.StatusForbidden},
	{user.ErrForbidden, http.StatusForbidden},

	// 404
	{product.ErrProductNotFound, http.StatusNotFound},
	{order.ErrOrderNotFound, http.StatusNotFound},
	{favorite.ErrProductNotFound, http.StatusNotFound},
	{review.ErrProductNotFound, http.StatusNotFound},
	{review.ErrReviewNotFound, http.StatusNotFound},
	{giftcard.ErrNotFound, http.StatusNotFound},
	{user.ErrUserNotFound, http.StatusNotFound},

	// 409
	{ErrOutOfStock, http.StatusConflict},
	{review.ErrAlreadyReviewed, http.StatusConflict},
	{user.ErrEmailExists, http.StatusConflict},
	{order.ErrInvalidTransition, http.StatusConflict},
	{giftcard.ErrInsufficientBalance, http.StatusConflict},
	{giftcard.ErrExpired, http.StatusConflict},

	// 400
	{ErrDeviceRequired, http.StatusBadRequest},
	{ErrBadRequest, http.StatusBadRequest},
	{catalog.ErrFlavorRequired, http.StatusBadRequest},
	{catalog.ErrSizeRequired, http.StatusBadRequest},
	{catalog.ErrQuantityRequired, http.StatusBadRequest},
	{catalog.ErrUnknownOption, http.StatusBadRequest},
	{catalog.ErrMissingProductID, http.StatusBadRequest},
	{catalog.ErrNegativePrice, http.StatusBadRequest},
	{cart.ErrMissingItemID, http.StatusBadRequest},
	{cart.ErrInvalidQuantity, http.StatusBadRequest},
	{cart.ErrInvalidPrice, http.StatusBadRequest},
	{cart.ErrInvalidDeviceID, http.StatusBadRequest},
	{checkout.ErrCartEmpty, http.StatusBadRequest},
	{checkout.ErrPhoneRequired, http.StatusBadRequest},
	{checkout.ErrAddressRequired, http.StatusBadRequest},
	{checkout.ErrDeliveryDateRequired, http.StatusBadRequest},
	{checkout.ErrInvalidDeliveryDate, http.StatusBadRequest},
	{product.ErrTitleRequired, http.StatusBadRequest},
	{product.ErrInvalidPrice, http.StatusBadRequest},
	{product.ErrNoFieldsUpdate, http.StatusBadRequest},
	{order.ErrInvalidStatus, http.StatusBadRequest},
	{order.ErrInvalidPaymentStatus, http.StatusBadRequest},
	{favorite.ErrMissingProductID, http.StatusBadRequest},
	{review.ErrInvalidRating, http.StatusBadRequest},
	{review.ErrMissingProductID, http.StatusBadRequest},
	{giftcard.ErrInvalidDenomination, http.StatusBadRequest},
	{giftcard.ErrInvalidAmount, http.StatusBadRequest},
	{chat.ErrEmptyMessage, http.StatusBadRequest},
	{chat.ErrMessageTooLong, http.StatusBadRequest},
	{chat.ErrMissingConversation, http.StatusBadRequest},
	{user.ErrInvalidEmail, http.StatusBadRequest},
	{user.ErrWeakPassword, http.StatusBadRequest},
	{user.ErrInvalidRole, http.StatusBadRequest},
	{user.ErrNoFieldsUpdate, http.StatusBadRequest},
	{analytics.ErrUnsupportedWindow, http.StatusBadRequest},

	// 500 with a customer-facing message
	{checkout.ErrOrderFailed, http.StatusInternalServerError},
	{cart.ErrLoadCart, http.StatusInternalServerError},
	{cart.ErrPersistCart, http.StatusInternalServerError},
}

// statusFor returns the HTTP status and the message safe to show for err.
func statusFor(err error) (int, string) {
	for _, m := range errorStatuses {
		if errors.Is(err, m.err) {
			return m.status, m.err.Error()
		}
	}
	return http.StatusInternalServerError, "internal server error"
}

func respondError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.FromCtx(c.Request.Context()).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
