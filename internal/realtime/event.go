package realtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Resources with change notifications.
const (
	ResourceProducts     = "products"
	ResourceOrders       = "orders"
	ResourceReviews      = "reviews"
	ResourceChatMessages = "chat_messages"
)

var KnownResources = []string{ResourceProducts, ResourceOrders, ResourceReviews, ResourceChatMessages}

var ErrInvalidPayload = errors.New("invalid change payload")

// Event says that a row changed. Subscribers re-query; the row itself is not carried.
// Key is the partition the row belongs to (customer id for orders and chat).
type Event struct {
	Table  string `mapstructure:"table" json:"table"`
	Action string `mapstructure:"action" json:"action"`
	ID     string `mapstructure:"id" json:"id"`
	Key    string `mapstructure:"key" json:"key,omitempty"`
}

func IsKnownResource(name string) bool {
	for _, r := range KnownResources {
		if r == name {
			return true
		}
	}
	return false
}

// DecodeEvent parses a NOTIFY payload. Ids may arrive as numbers or strings.
func DecodeEvent(payload string) (Event, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var ev Event
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &ev,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Event{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	ev.Table = strings.ToLower(strings.TrimSpace(ev.Table))
	ev.Action = strings.ToUpper(strings.TrimSpace(ev.Action))
	if ev.Table == "" {
		return Event{}, fmt.Errorf("%w: missing table", ErrInvalidPayload)
	}
	return ev, nil
}
