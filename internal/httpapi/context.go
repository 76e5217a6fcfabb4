package httpapi

import (
	"net/http"
	"strconv"

	"bakery-be/internal/logger"
	"bakery-be/internal/realtime"
	"bakery-be/internal/utils"

	"github.com/gin-gonic/gin"
)

const deviceKey = "device_id"

func requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !utils.IsAdmin(c.Request.Context()) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

// requireDevice reads the device id the cart is scoped to.
func requireDevice() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader(logger.HeaderDeviceID)
		if deviceID == "" {
			respondError(c, ErrDeviceRequired)
			return
		}
		c.Set(deviceKey, deviceID)
		c.Next()
	}
}

// authorizeFeed lets anyone follow catalog and review changes. Order changes need an
// account, and customers only see their own orders. Chat traffic is for the admin console.
func authorizeFeed(r *http.Request, resource string) (realtime.Filter, bool) {
	switch resource {
	case realtime.ResourceProducts, realtime.ResourceReviews:
		return nil, true
	case realtime.ResourceOrders:
		userID, ok := utils.GetUserIDFromContext(r.Context())
		if !ok {
			return nil, false
		}
		if utils.IsAdmin(r.Context()) {
			return nil, true
		}
		return ownedBy(userID), true
	default:
		return nil, utils.IsAdmin(r.Context())
	}
}

// ownedBy passes events keyed to customerID and unkeyed resync cues.
func ownedBy(customerID string) realtime.Filter {
	return func(ev realtime.Event) bool {
		return ev.Key == "" || ev.Key == customerID
	}
}

func queryInt32(c *gin.Context, key string) int32 {
	v, err := strconv.ParseInt(c.Query(key), 10, 32)
	if err != nil {
		return 0
	}
	return int32(v)
}

func queryBool(c *gin.Context, key string) *bool {
	v, err := strconv.ParseBool(c.Query(key))
	if err != nil {
		return nil
	}
	return &v
}
