package httpapi

import (
	"net/http"

	"bakery-be/internal/cart"
	"bakery-be/internal/catalog"
	"bakery-be/internal/logger"
	"bakery-be/internal/metrics"
	"bakery-be/internal/product"
	"bakery-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *handler) deviceCart(c *gin.Context) (*cart.Store, bool) {
	store, err := h.Carts.Get(c.GetString(deviceKey))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return store, true
}

func (h *handler) getCart(c *gin.Context) {
	store, ok := h.deviceCart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, store.Snapshot())
}

type addItemRequest struct {
	ProductID  string `json:"product_id" binding:"required"`
	Flavor     string `json:"flavor"`
	SizeID     string `json:"size_id"`
	QuantityID string `json:"quantity_id"`
	Quantity   int    `json:"quantity"`
}

// addCartItem resolves the selection against the catalog so the line id and price
// always come from the server's tables.
func (h *handler) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ErrBadRequest)
		return
	}

	store, ok := h.deviceCart(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	p, err := h.Products.Get(ctx, req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !p.InStock {
		respondError(c, ErrOutOfStock)
		return
	}

	cfg, err := catalog.Configure(product.ToRef(*p), catalog.Selection{
		Flavor:     req.Flavor,
		SizeID:     req.SizeID,
		QuantityID: req.QuantityID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	line, err := store.AddItem(cart.Item{
		ID:        cfg.LineID,
		Title:     cfg.Title,
		Price:     cfg.UnitPrice,
		Quantity:  req.Quantity,
		Image:     utils.PtrString(p.ImageURL),
		Variant:   cfg.Summary,
		ProductID: p.ID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.Metrics.Inc(metrics.CartMutations)
	logger.FromCtx(ctx).Info("cart item added",
		zap.String("line_id", line.ID),
		zap.Int("quantity", line.Quantity),
	)

	c.JSON(http.StatusOK, store.Snapshot())
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *handler) updateCartItem(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ErrBadRequest)
		return
	}

	store, ok := h.deviceCart(c)
	if !ok {
		return
	}
	if err := store.UpdateQuantity(c.Param("id"), *req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	h.Metrics.Inc(metrics.CartMutations)
	c.JSON(http.StatusOK, store.Snapshot())
}

func (h *handler) removeCartItem(c *gin.Context) {
	store, ok := h.deviceCart(c)
	if !ok {
		return
	}
	if err := store.RemoveItem(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	h.Metrics.Inc(metrics.CartMutations)
	c.JSON(http.StatusOK, store.Snapshot())
}

func (h *handler) clearCart(c *gin.Context) {
	store, ok := h.deviceCart(c)
	if !ok {
		return
	}
	if err := store.Clear(); err != nil {
		respondError(c, err)
		return
	}

	h.Metrics.Inc(metrics.CartMutations)
	c.JSON(http.StatusOK, store.Snapshot())
}
