package httpapi

import (
	"net/http"
	"time"

	"bakery-be/internal/checkout"
	"bakery-be/internal/order"
	"bakery-be/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *handler) checkout(c *gin.Context) {
	var req checkout.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ErrBadRequest)
		return
	}

	store, ok := h.deviceCart(c)
	if !ok {
		return
	}

	res, err := h.Checkout.Submit(c.Request.Context(), store, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// listOrders serves both the customer history and the admin console; the service
// pins customers to their own orders.
func (h *handler) listOrders(c *gin.Context) {
	filter := order.ListFilter{
		Limit: queryInt32(c, "limit"),
		Page:  queryInt32(c, "page"),
	}
	if s := c.Query("status"); s != "" {
		st := order.Status(s)
		filter.Status = &st
	}
	if s := c.Query("customer_id"); s != "" {
		filter.CustomerID = utils.StrPtr(s)
	}
	if s := c.Query("since"); s != "" {
		since, err := time.Parse("2006-01-02", s)
		if err != nil {
			respondError(c, ErrBadRequest)
			return
		}
		filter.Since = &since
	}

	orders, err := h.Orders.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *handler) getOrder(c *gin.Context) {
	o, err := h.Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *handler) cancelOrder(c *gin.Context) {
	o, err := h.Orders.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *handler) updateOrderStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ErrBadRequest)
		return
	}

	o, err := h.Orders.UpdateStatus(c.Request.Context(), c.Param("id"), order.Status(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *handler) updatePaymentStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ErrBadRequest)
		return
	}

	o, err := h.Orders.UpdatePaymentStatus(c.Request.Context(), c.Param("id"), order.PaymentStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}
