package chat

import (
	"sync"
	"time"
)

const (
	SenderCustomer = "customer"
	SenderAdmin    = "admin"

	MaxBodyLength = 2000
	historyLimit  = 200
)

// Message belongs to one conversation; a conversation is keyed by the customer id.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	SenderRole     string    `json:"sender_role"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

type NewMessage struct {
	ConversationID string
	SenderID       string
	SenderRole     string
	Body           string
}

type Conversation struct {
	CustomerID    string    `json:"customer_id"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	MessageCount  int       `json:"message_count"`
}

// Thread is the client-side view of one conversation. Messages may arrive both from
// history loads and from change notifications, so Merge skips ids already seen.
type Thread struct {
	mu       sync.Mutex
	seen     map[string]struct{}
	messages []Message
}

func NewThread() *Thread {
	return &Thread{seen: map[string]struct{}{}}
}

// Merge appends the messages not yet in the thread and returns only those.
func (t *Thread) Merge(msgs ...Message) []Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	added := []Message{}
	for _, m := range msgs {
		if _, ok := t.seen[m.ID]; ok {
			continue
		}
		t.seen[m.ID] = struct{}{}
		t.messages = append(t.messages, m)
		added = append(added, m)
	}
	return added
}

func (t *Thread) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Thread) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}
