package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bakery-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, msg NewMessage) (Message, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(Message), args.Error(1)
}

func (m *MockRepository) ListByConversation(ctx context.Context, conversationID string, limit int) ([]Message, error) {
	args := m.Called(ctx, conversationID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Message), args.Error(1)
}

func (m *MockRepository) Conversations(ctx context.Context) ([]Conversation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Conversation), args.Error(1)
}

func customerCtx() context.Context {
	return utils.SetUserContext(context.Background(), "cust-1", "dana@example.com", utils.RoleCustomer)
}

func adminCtx() context.Context {
	return utils.SetUserContext(context.Background(), "adm-1", "owner@bakery.test", utils.RoleAdmin)
}

func TestService_Send(t *testing.T) {
	t.Run("Trims and stores into own conversation", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("Create", mock.Anything, NewMessage{
			ConversationID: "cust-1", SenderID: "cust-1", SenderRole: SenderCustomer, Body: "hello",
		}).Return(Message{ID: "m1"}, nil)

		msg, err := svc.Send(customerCtx(), "  hello ")
		require.NoError(t, err)
		assert.Equal(t, "m1", msg.ID)
	})

	t.Run("Validation", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Send(context.Background(), "hi")
		assert.ErrorIs(t, err, ErrUnauthorized)

		_, err = svc.Send(customerCtx(), "   ")
		assert.ErrorIs(t, err, ErrEmptyMessage)

		_, err = svc.Send(customerCtx(), strings.Repeat("a", MaxBodyLength+1))
		assert.ErrorIs(t, err, ErrMessageTooLong)
	})

	t.Run("Store failure", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("Create", mock.Anything, mock.Anything).Return(Message{}, errors.New("db down"))

		_, err := svc.Send(customerCtx(), "hello")
		assert.Error(t, err)
	})
}

func TestService_Reply(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	repo.On("Create", mock.Anything, NewMessage{
		ConversationID: "cust-1", SenderID: "adm-1", SenderRole: SenderAdmin, Body: "Yes it is",
	}).Return(Message{ID: "m2"}, nil)

	msg, err := svc.Reply(adminCtx(), "cust-1", "Yes it is")
	require.NoError(t, err)
	assert.Equal(t, "m2", msg.ID)

	_, err = svc.Reply(customerCtx(), "cust-2", "hi")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Reply(adminCtx(), " ", "hi")
	assert.ErrorIs(t, err, ErrMissingConversation)
}

func TestService_History(t *testing.T) {
	t.Run("Customer is pinned to own conversation", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("ListByConversation", mock.Anything, "cust-1", historyLimit).Return([]Message{{ID: "m1"}}, nil)

		msgs, err := svc.History(customerCtx(), "someone-else")
		require.NoError(t, err)
		assert.Len(t, msgs, 1)
		repo.AssertExpectations(t)
	})

	t.Run("Admin reads any conversation", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("ListByConversation", mock.Anything, "cust-7", historyLimit).Return([]Message{}, nil)

		_, err := svc.History(adminCtx(), "cust-7")
		require.NoError(t, err)

		_, err = svc.History(adminCtx(), "")
		assert.ErrorIs(t, err, ErrMissingConversation)
	})
}

func TestService_Conversations(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	older := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)
	repo.On("Conversations", mock.Anything).Return([]Conversation{
		{CustomerID: "a", LastMessageAt: older},
		{CustomerID: "b", LastMessageAt: newer},
	}, nil)

	convs, err := svc.Conversations(adminCtx())
	require.NoError(t, err)
	assert.Equal(t, "b", convs[0].CustomerID)

	_, err = svc.Conversations(customerCtx())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Sync(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	thread := NewThread()
	thread.Merge(Message{ID: "m1"})

	repo.On("ListByConversation", mock.Anything, "cust-1", historyLimit).
		Return([]Message{{ID: "m1"}, {ID: "m2"}}, nil)

	added, err := svc.Sync(customerCtx(), "cust-1", thread)
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, "m2", added[0].ID)
	assert.Equal(t, 2, thread.Len())
}
