package httpapi

import (
	"net/http"

	"bakery-be/internal/catalog"
	"bakery-be/internal/product"
	"bakery-be/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *handler) listProducts(c *gin.Context) {
	opts := product.ListOptions{
		Category:   utils.NilIfEmpty(c.Query("category")),
		Search:     utils.NilIfEmpty(c.Query("search")),
		InStock:    queryBool(c, "in_stock"),
		OnlyOffers: c.Query("offers") == "true",
		Limit:      queryInt32(c, "limit"),
		Page:       queryInt32(c, "page"),
	}

	res, err := h.Products.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handler) productDetail(c *gin.Context) {
	d, err := h.Products.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// configureProduct prices a variant selection without touching the cart.
func (h *handler) configureProduct(c *gin.Context) {
	var sel catalog.Selection
	if err := c.ShouldBindJSON(&sel); err != nil {
		respondError(c, ErrBadRequest)
		return
	}

	p, err := h.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	cfg, err := catalog.Configure(product.ToRef(*p), sel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *handler) createProduct(c *gin.Context) {
	var in product.NewProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, ErrBadRequest)
		return
	}

	p, err := h.Products.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handler) updateProduct(c *gin.Context) {
	var in product.UpdateProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, ErrBadRequest)
		return
	}
	in.ID = c.Param("id")

	p, err := h.Products.Update(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type stockRequest struct {
	InStock *bool `json:"in_stock" binding:"required"`
}

func (h *handler) setStock(c *gin.Context) {
	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ErrBadRequest)
		return
	}
	if err := h.Products.SetStock(c.Request.Context(), c.Param("id"), *req.InStock); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type offerRequest struct {
	IsOffer *bool `json:"is_offer" binding:"required"`
}

func (h *handler) setOffer(c *gin.Context) {
	var req offerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ErrBadRequest)
		return
	}
	if err := h.Products.SetOffer(c.Request.Context(), c.Param("id"), *req.IsOffer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
