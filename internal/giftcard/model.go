package giftcard

import "time"

// Denominations are the amounts a gift card can be bought for.
var Denominations = []int{250, 500, 1000, 2000, 5000}

const (
	CodePrefix = "GIFT"
	Validity   = 365 * 24 * time.Hour
)

type GiftCard struct {
	ID             string    `json:"id"`
	Code           string    `json:"code"`
	InitialAmount  int       `json:"initial_amount"`
	Balance        int       `json:"balance"`
	PurchaserID    string    `json:"purchaser_id"`
	RecipientName  *string   `json:"recipient_name,omitempty"`
	RecipientEmail *string   `json:"recipient_email,omitempty"`
	Message        *string   `json:"message,omitempty"`
	ExpiresAt      time.Time `json:"expires_at"`
	CreatedAt      time.Time `json:"created_at"`
}

func (g GiftCard) Expired(now time.Time) bool {
	return !now.Before(g.ExpiresAt)
}

type IssueInput struct {
	Amount         int     `json:"amount"`
	RecipientName  *string `json:"recipient_name"`
	RecipientEmail *string `json:"recipient_email"`
	Message        *string `json:"message"`
}

type newCard struct {
	Code      string
	Amount    int
	Purchaser string
	Input     IssueInput
	ExpiresAt time.Time
}
