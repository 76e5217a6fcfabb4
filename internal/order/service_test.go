package order

import (
	"context"
	"errors"
	"testing"

	"bakery-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, o NewOrder) (string, error) {
	args := m.Called(ctx, o)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) CreateItems(ctx context.Context, orderID string, items []NewItem) error {
	return m.Called(ctx, orderID, items).Error(0)
}

func (m *MockRepository) List(ctx context.Context, filter ListFilter) ([]Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Order), args.Error(1)
}

func (m *MockRepository) ItemsByOrderIDs(ctx context.Context, orderIDs []string) (map[string][]Item, error) {
	args := m.Called(ctx, orderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]Item), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, id string) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *MockRepository) UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

// --- Helpers ---

func customerCtx(id string) context.Context {
	return utils.SetUserContext(context.Background(), id, id+"@example.com", utils.RoleCustomer)
}

func adminCtx() context.Context {
	return utils.SetUserContext(context.Background(), "admin-1", "admin@example.com", utils.RoleAdmin)
}

// --- Tests ---

func TestService_List(t *testing.T) {
	t.Run("Customer sees only own orders", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		ctx := customerCtx("cust-1")

		repo.On("List", ctx, mock.MatchedBy(func(f ListFilter) bool {
			return f.CustomerID != nil && *f.CustomerID == "cust-1" && f.Limit == 100
		})).Return([]Order{{ID: "o1", CustomerID: "cust-1"}}, nil)
		repo.On("ItemsByOrderIDs", ctx, []string{"o1"}).
			Return(map[string][]Item{"o1": {{ID: "i1"}}}, nil)

		other := "cust-2"
		orders, err := svc.List(ctx, ListFilter{CustomerID: &other, Limit: 1000})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Len(t, orders[0].Items, 1)
	})

	t.Run("Admin lists everything", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		ctx := adminCtx()

		repo.On("List", ctx, ListFilter{}).Return([]Order{{ID: "o1"}, {ID: "o2"}}, nil)
		repo.On("ItemsByOrderIDs", ctx, []string{"o1", "o2"}).Return(map[string][]Item{}, nil)

		orders, err := svc.List(ctx, ListFilter{})
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		_, err := svc.List(context.Background(), ListFilter{})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Items error", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		ctx := adminCtx()

		repo.On("List", ctx, mock.Anything).Return([]Order{{ID: "o1"}}, nil)
		repo.On("ItemsByOrderIDs", ctx, mock.Anything).Return(nil, errors.New("db error"))

		_, err := svc.List(ctx, ListFilter{})
		assert.Error(t, err)
	})
}

func TestService_Get(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("Get", mock.Anything, "o1").Return(&Order{ID: "o1", CustomerID: "cust-1"}, nil)
	repo.On("ItemsByOrderIDs", mock.Anything, []string{"o1"}).Return(map[string][]Item{}, nil)

	o, err := svc.Get(customerCtx("cust-1"), "o1")
	require.NoError(t, err)
	assert.Equal(t, "o1", o.ID)
	assert.NotNil(t, o.Items)

	_, err = svc.Get(customerCtx("cust-2"), "o1")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.Get(adminCtx(), "o1")
	assert.NoError(t, err)
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("Forward move", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Get", mock.Anything, "o1").Return(&Order{ID: "o1", Status: StatusConfirmed}, nil)
		repo.On("UpdateStatus", mock.Anything, "o1", StatusConfirmed, StatusPreparing).Return(nil)

		o, err := svc.UpdateStatus(adminCtx(), "o1", StatusPreparing)
		require.NoError(t, err)
		assert.Equal(t, StatusPreparing, o.Status)
		repo.AssertExpectations(t)
	})

	t.Run("Backward move rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Get", mock.Anything, "o1").Return(&Order{ID: "o1", Status: StatusDelivered}, nil)

		_, err := svc.UpdateStatus(adminCtx(), "o1", StatusCancelled)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Concurrent change wins", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Get", mock.Anything, "o1").Return(&Order{ID: "o1", Status: StatusConfirmed}, nil)
		repo.On("UpdateStatus", mock.Anything, "o1", StatusConfirmed, StatusDelivered).Return(ErrInvalidTransition)

		_, err := svc.UpdateStatus(adminCtx(), "o1", StatusDelivered)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		repo.AssertExpectations(t)
	})

	t.Run("Guards", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.UpdateStatus(customerCtx("cust-1"), "o1", StatusConfirmed)
		assert.ErrorIs(t, err, ErrForbidden)

		_, err = svc.UpdateStatus(adminCtx(), "o1", Status("lost"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Run("Customer cancels pending order", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Get", mock.Anything, "o1").Return(&Order{ID: "o1", CustomerID: "cust-1", Status: StatusPending}, nil)
		repo.On("ItemsByOrderIDs", mock.Anything, []string{"o1"}).Return(map[string][]Item{}, nil)
		repo.On("UpdateStatus", mock.Anything, "o1", StatusPending, StatusCancelled).Return(nil)

		o, err := svc.Cancel(customerCtx("cust-1"), "o1")
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, o.Status)
	})

	t.Run("Customer cannot cancel once preparing", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Get", mock.Anything, "o1").Return(&Order{ID: "o1", CustomerID: "cust-1", Status: StatusPreparing}, nil)
		repo.On("ItemsByOrderIDs", mock.Anything, []string{"o1"}).Return(map[string][]Item{}, nil)

		_, err := svc.Cancel(customerCtx("cust-1"), "o1")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Cancel loses to a delivery recorded meanwhile", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Get", mock.Anything, "o1").Return(&Order{ID: "o1", CustomerID: "cust-1", Status: StatusConfirmed}, nil)
		repo.On("ItemsByOrderIDs", mock.Anything, []string{"o1"}).Return(map[string][]Item{}, nil)
		repo.On("UpdateStatus", mock.Anything, "o1", StatusConfirmed, StatusCancelled).Return(ErrInvalidTransition)

		_, err := svc.Cancel(customerCtx("cust-1"), "o1")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		repo.AssertExpectations(t)
	})
}

func TestService_UpdatePaymentStatus(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("Get", mock.Anything, "o1").Return(&Order{ID: "o1"}, nil)
	repo.On("UpdatePaymentStatus", mock.Anything, "o1", PaymentPaid).Return(nil)

	o, err := svc.UpdatePaymentStatus(adminCtx(), "o1", PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, PaymentPaid, o.PaymentStatus)

	_, err = svc.UpdatePaymentStatus(adminCtx(), "o1", PaymentStatus("comp"))
	assert.ErrorIs(t, err, ErrInvalidPaymentStatus)

	_, err = svc.UpdatePaymentStatus(customerCtx("cust-1"), "o1", PaymentPaid)
	assert.ErrorIs(t, err, ErrForbidden)
}
