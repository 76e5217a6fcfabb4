package httpapi

import (
	"net/http"

	"bakery-be/internal/analytics"

	"github.com/gin-gonic/gin"
)

// dashboard accepts ?window=30 or an ISO-8601 duration such as P3M.
func (h *handler) dashboard(c *gin.Context) {
	window, err := analytics.ParseWindow(c.Query("window"))
	if err != nil {
		respondError(c, err)
		return
	}

	d, err := h.Analytics.Dashboard(c.Request.Context(), window)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *handler) metricsSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.Metrics.Snapshot())
}

type roleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *handler) setRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ErrBadRequest)
		return
	}
	if err := h.Users.SetRole(c.Request.Context(), c.Param("id"), req.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
