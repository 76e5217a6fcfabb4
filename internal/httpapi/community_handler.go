package httpapi

import (
	"net/http"

	"bakery-be/internal/giftcard"
	"bakery-be/internal/review"

	"github.com/gin-gonic/gin"
)

func (h *handler) listFavorites(c *gin.Context) {
	favs, err := h.Favorites.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favs)
}

// addFavorite is idempotent.
func (h *handler) addFavorite(c *gin.Context) {
	if err := h.Favorites.Add(c.Request.Context(), c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) removeFavorite(c *gin.Context) {
	if err := h.Favorites.Remove(c.Request.Context(), c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) listReviews(c *gin.Context) {
	reviews, err := h.Reviews.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *handler) reviewSummary(c *gin.Context) {
	s, err := h.Reviews.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *handler) createReview(c *gin.Context) {
	var in review.NewReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, ErrBadRequest)
		return
	}
	in.ProductID = c.Param("id")

	rv, err := h.Reviews.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rv)
}

func (h *handler) deleteReview(c *gin.Context) {
	if err := h.Reviews.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) myGiftCards(c *gin.Context) {
	cards, err := h.GiftCards.Mine(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (h *handler) issueGiftCard(c *gin.Context) {
	var in giftcard.IssueInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, ErrBadRequest)
		return
	}

	card, err := h.GiftCards.Issue(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

func (h *handler) lookupGiftCard(c *gin.Context) {
	card, err := h.GiftCards.Lookup(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":       card.Code,
		"balance":    card.Balance,
		"expires_at": card.ExpiresAt,
	})
}

type redeemRequest struct {
	Code   string `json:"code" binding:"required"`
	Amount int    `json:"amount" binding:"required"`
}

func (h *handler) redeemGiftCard(c *gin.Context) {
	var req redeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ErrBadRequest)
		return
	}

	balance, err := h.GiftCards.Redeem(c.Request.Context(), req.Code, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}
