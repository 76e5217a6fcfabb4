package chat

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"bakery-be/internal/logger"
	"bakery-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Send(ctx context.Context, body string) (Message, error)
	Reply(ctx context.Context, conversationID, body string) (Message, error)
	History(ctx context.Context, conversationID string) ([]Message, error)
	Conversations(ctx context.Context) ([]Conversation, error)
	Sync(ctx context.Context, conversationID string, thread *Thread) ([]Message, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validateBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", ErrEmptyMessage
	}
	if utf8.RuneCountInString(body) > MaxBodyLength {
		return "", ErrMessageTooLong
	}
	return body, nil
}

// Send posts a customer message into the customer's own conversation.
func (s *service) Send(ctx context.Context, body string) (Message, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return Message{}, ErrUnauthorized
	}

	body, err := validateBody(body)
	if err != nil {
		return Message{}, err
	}

	msg, err := s.repo.Create(ctx, NewMessage{
		ConversationID: userID,
		SenderID:       userID,
		SenderRole:     SenderCustomer,
		Body:           body,
	})
	if err != nil {
		logger.FromCtx(ctx).Error("failed to store chat message",
			zap.String("layer", "service"),
			zap.String("method", "Send"),
			zap.Error(err),
		)
		return Message{}, err
	}
	return msg, nil
}

func (s *service) Reply(ctx context.Context, conversationID, body string) (Message, error) {
	adminID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return Message{}, ErrUnauthorized
	}
	if !utils.IsAdmin(ctx) {
		return Message{}, ErrForbidden
	}

	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return Message{}, ErrMissingConversation
	}

	body, err := validateBody(body)
	if err != nil {
		return Message{}, err
	}

	return s.repo.Create(ctx, NewMessage{
		ConversationID: conversationID,
		SenderID:       adminID,
		SenderRole:     SenderAdmin,
		Body:           body,
	})
}

// History returns a conversation. Customers always get their own, whatever id they pass.
func (s *service) History(ctx context.Context, conversationID string) ([]Message, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if !utils.IsAdmin(ctx) {
		conversationID = userID
	}
	if conversationID == "" {
		return nil, ErrMissingConversation
	}
	return s.repo.ListByConversation(ctx, conversationID, historyLimit)
}

func (s *service) Conversations(ctx context.Context) ([]Conversation, error) {
	if _, ok := utils.GetUserIDFromContext(ctx); !ok {
		return nil, ErrUnauthorized
	}
	if !utils.IsAdmin(ctx) {
		return nil, ErrForbidden
	}

	convs, err := s.repo.Conversations(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(convs, func(i, j int) bool {
		return convs[i].LastMessageAt.After(convs[j].LastMessageAt)
	})
	return convs, nil
}

// Sync reloads the conversation and merges it into thread, returning only new messages.
func (s *service) Sync(ctx context.Context, conversationID string, thread *Thread) ([]Message, error) {
	msgs, err := s.History(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return thread.Merge(msgs...), nil
}
