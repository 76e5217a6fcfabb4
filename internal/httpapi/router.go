package httpapi

import (
	"context"
	"net/http"

	"bakery-be/internal/analytics"
	"bakery-be/internal/cart"
	"bakery-be/internal/chat"
	"bakery-be/internal/checkout"
	"bakery-be/internal/favorite"
	"bakery-be/internal/giftcard"
	"bakery-be/internal/metrics"
	"bakery-be/internal/order"
	"bakery-be/internal/product"
	"bakery-be/internal/realtime"
	"bakery-be/internal/review"
	"bakery-be/internal/user"

	"github.com/gin-gonic/gin"
)

type CheckoutService interface {
	Submit(ctx context.Context, c checkout.Cart, req checkout.Request) (*checkout.Result, error)
}

type AnalyticsService interface {
	Dashboard(ctx context.Context, window analytics.Window) (*analytics.Dashboard, error)
}

// Deps is everything the API serves. Health may be nil.
type Deps struct {
	Products  product.Service
	Orders    order.Service
	Checkout  CheckoutService
	Analytics AnalyticsService
	Favorites favorite.Service
	Reviews   review.Service
	GiftCards giftcard.Service
	Chat      chat.Service
	Users     user.Service
	Carts     *cart.Registry
	Metrics   *metrics.Registry
	Hub       *realtime.Hub

	AllowedOrigin string
	Health        func(ctx context.Context) error
}

type handler struct {
	Deps
}

// NewRouter builds the gin engine. Identity, rate limiting and CORS are applied by the
// net/http middleware chain around it.
func NewRouter(d Deps) *gin.Engine {
	if d.Metrics == nil {
		d.Metrics = metrics.NewRegistry()
	}
	if d.Hub == nil {
		d.Hub = realtime.NewHub()
	}
	h := &handler{Deps: d}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", h.health)

	api := r.Group("/api")
	{
		api.POST("/auth/register", h.register)
		api.POST("/auth/login", h.login)

		api.GET("/products", h.listProducts)
		api.GET("/products/:id", h.productDetail)
		api.POST("/products/:id/configure", h.configureProduct)
		api.GET("/products/:id/reviews", h.listReviews)
		api.GET("/products/:id/reviews/summary", h.reviewSummary)

		carts := api.Group("/cart", requireDevice())
		{
			carts.GET("", h.getCart)
			carts.POST("/items", h.addCartItem)
			carts.PATCH("/items/:id", h.updateCartItem)
			carts.DELETE("/items/:id", h.removeCartItem)
			carts.DELETE("", h.clearCart)
		}

		authed := api.Group("", requireAuth())
		{
			authed.GET("/me", h.me)
			authed.PATCH("/me", h.updateProfile)

			authed.POST("/checkout", requireDevice(), h.checkout)

			authed.GET("/orders", h.listOrders)
			authed.GET("/orders/:id", h.getOrder)
			authed.POST("/orders/:id/cancel", h.cancelOrder)

			authed.GET("/favorites", h.listFavorites)
			authed.PUT("/favorites/:productId", h.addFavorite)
			authed.DELETE("/favorites/:productId", h.removeFavorite)

			authed.POST("/products/:id/reviews", h.createReview)

			authed.GET("/giftcards", h.myGiftCards)
			authed.POST("/giftcards", h.issueGiftCard)
			authed.GET("/giftcards/:code", h.lookupGiftCard)
			authed.POST("/giftcards/redeem", h.redeemGiftCard)

			authed.GET("/chat/messages", h.chatHistory)
			authed.POST("/chat/messages", h.sendChat)
		}

		admin := api.Group("/admin", requireAuth(), requireAdmin())
		{
			admin.GET("/orders", h.listOrders)
			admin.PATCH("/orders/:id/status", h.updateOrderStatus)
			admin.PATCH("/orders/:id/payment", h.updatePaymentStatus)

			admin.GET("/analytics", h.dashboard)
			admin.GET("/metrics", h.metricsSnapshot)

			admin.POST("/products", h.createProduct)
			admin.PATCH("/products/:id", h.updateProduct)
			admin.PUT("/products/:id/stock", h.setStock)
			admin.PUT("/products/:id/offer", h.setOffer)

			admin.DELETE("/reviews/:id", h.deleteReview)
			admin.PUT("/users/:id/role", h.setRole)

			admin.GET("/chat/conversations", h.conversations)
			admin.GET("/chat/conversations/:id/messages", h.conversationHistory)
			admin.POST("/chat/conversations/:id/messages", h.replyChat)
		}
	}

	ws := r.Group("/ws")
	{
		ws.GET("/feed", gin.WrapH(realtime.NewFeedHandler(h.Hub, h.AllowedOrigin, authorizeFeed)))
		ws.GET("/chat", requireAuth(), h.chatStream)
	}

	return r
}

func (h *handler) health(c *gin.Context) {
	if h.Health != nil {
		if err := h.Health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
