package chat

import (
	"context"
	"database/sql"
)

type Repository interface {
	Create(ctx context.Context, m NewMessage) (Message, error)
	ListByConversation(ctx context.Context, conversationID string, limit int) ([]Message, error)
	Conversations(ctx context.Context) ([]Conversation, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m NewMessage) (Message, error) {
	msg := Message{
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		SenderRole:     m.SenderRole,
		Body:           m.Body,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO chat_messages (conversation_id, sender_id, sender_role, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, m.ConversationID, m.SenderID, m.SenderRole, m.Body).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return Message{}, err
	}
	return msg, nil
}

// ListByConversation returns the latest messages in chronological order.
func (r *repository) ListByConversation(ctx context.Context, conversationID string, limit int) ([]Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, conversation_id, sender_id, sender_role, body, created_at
		FROM (
			SELECT id, conversation_id, sender_id, sender_role, body, created_at
			FROM chat_messages
			WHERE conversation_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) latest
		ORDER BY created_at ASC
	`, conversationID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.SenderRole, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *repository) Conversations(ctx context.Context) ([]Conversation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT ON (conversation_id)
			conversation_id,
			body,
			created_at,
			COUNT(*) OVER (PARTITION BY conversation_id)
		FROM chat_messages
		ORDER BY conversation_id, created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	convs := []Conversation{}
	for rows.Next() {
		var c Conversation
		if err := rows.Scan(&c.CustomerID, &c.LastMessage, &c.LastMessageAt, &c.MessageCount); err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}
