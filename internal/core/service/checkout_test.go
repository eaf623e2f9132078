package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/karibbean/cart-service/internal/core/domain"
	"github.com/karibbean/cart-service/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) SubmitOrder(ctx context.Context, o domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrder(ctx context.Context, o domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) StoreOrders(ctx context.Context, os []domain.Order) error {
	args := m.Called(ctx, os)
	return args.Error(0)
}

var testCustomer = domain.Customer{
	Name:          "Jane Charles",
	Email:         "jane@example.com",
	Phone:         "+17581234567",
	Address:       "12 Bay Street, Castries",
	PaymentMethod: "Cash on Delivery",
	Notes:         "Call on arrival",
}

func TestCheckout(t *testing.T) {
	t.Run("EmptyCart", func(t *testing.T) {
		engine, _, _ := newTestEngine(t)
		checkout := service.NewCheckout(engine, nil, nil)

		_, err := checkout.Checkout(t.Context(), testCustomer)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmptyCart)
	})

	t.Run("AllSubmittersSucceed", func(t *testing.T) {
		engine, _, notices := newTestEngine(t)
		require.NoError(t, engine.AddItem(t.Context(), coconutDream))
		require.NoError(t, engine.AddItem(t.Context(), coconutDream))

		whatsApp := new(MockSubmitter)
		email := new(MockSubmitter)
		whatsApp.On("SubmitOrder", mock.Anything, mock.Anything).Return(nil)
		email.On("SubmitOrder", mock.Anything, mock.Anything).Return(nil)

		publisher := new(MockPublisher)
		publisher.On("PublishOrder", mock.Anything, mock.Anything).Return(nil)

		checkout := service.NewCheckout(engine, notices, publisher, whatsApp, email)

		order, err := checkout.Checkout(t.Context(), testCustomer)
		require.NoError(t, err)

		require.NoError(t, uuid.Validate(order.ID))
		assert.Equal(t, testCustomer, order.Customer)
		require.Len(t, order.Lines, 1)
		assert.Equal(t, 2, order.Lines[0].Quantity)
		assert.Equal(t, "30.00", order.Total.StringFixed(2))
		assert.WithinDuration(t, time.Now(), order.PlacedAt, time.Minute)

		assert.Empty(t, engine.Snapshot())
		assert.Equal(t, domain.Notice{
			Message:  "Order placed!",
			Severity: domain.SeveritySuccess,
		}, notices.last())

		whatsApp.AssertExpectations(t)
		email.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("SubmitterFailureKeepsCart", func(t *testing.T) {
		engine, _, notices := newTestEngine(t)
		require.NoError(t, engine.AddItem(t.Context(), velvetRose))

		submitErr := errors.New("gateway unavailable")
		whatsApp := new(MockSubmitter)
		whatsApp.On("SubmitOrder", mock.Anything, mock.Anything).Return(submitErr)

		checkout := service.NewCheckout(engine, notices, nil, whatsApp)

		_, err := checkout.Checkout(t.Context(), testCustomer)
		require.Error(t, err)
		assert.ErrorIs(t, err, submitErr)

		require.Len(t, engine.Snapshot(), 1)
		assert.Equal(t, domain.Notice{
			Message:  "Order could not be submitted, your cart is unchanged.",
			Severity: domain.SeverityError,
		}, notices.last())

		// failing submitters are retried before giving up
		whatsApp.AssertNumberOfCalls(t, "SubmitOrder", 3)
	})

	t.Run("ItemAddedMidCheckoutSurvives", func(t *testing.T) {
		engine, _, _ := newTestEngine(t)
		require.NoError(t, engine.AddItem(t.Context(), coconutDream))

		whatsApp := new(MockSubmitter)
		whatsApp.On("SubmitOrder", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) {
				require.NoError(t, engine.AddItem(context.Background(), velvetRose))
			}).
			Return(nil)

		checkout := service.NewCheckout(engine, nil, nil, whatsApp)

		order, err := checkout.Checkout(t.Context(), testCustomer)
		require.NoError(t, err)
		require.Len(t, order.Lines, 1)
		assert.Equal(t, coconutDream.ID, order.Lines[0].Product.ID)

		lines := engine.Snapshot()
		require.Len(t, lines, 1)
		assert.Equal(t, velvetRose.ID, lines[0].Product.ID)
	})

	t.Run("PublishFailureStillPlacesOrder", func(t *testing.T) {
		engine, _, _ := newTestEngine(t)
		require.NoError(t, engine.AddItem(t.Context(), coconutDream))

		whatsApp := new(MockSubmitter)
		whatsApp.On("SubmitOrder", mock.Anything, mock.Anything).Return(nil)

		publisher := new(MockPublisher)
		publisher.On("PublishOrder", mock.Anything, mock.Anything).
			Return(errors.New("broker down"))

		checkout := service.NewCheckout(engine, nil, publisher, whatsApp)

		_, err := checkout.Checkout(t.Context(), testCustomer)
		require.NoError(t, err)
		assert.Empty(t, engine.Snapshot())
	})
}

func TestOrderArchive(t *testing.T) {
	orders := []domain.Order{{ID: uuid.NewString(), Customer: testCustomer}}

	t.Run("Regular", func(t *testing.T) {
		storage := new(MockStorage)
		storage.On("StoreOrders", mock.Anything, orders).Return(nil)

		archive := service.NewOrderArchive(storage)
		require.NoError(t, archive.ArchiveOrders(t.Context(), orders))
		storage.AssertExpectations(t)
	})

	t.Run("StorageError", func(t *testing.T) {
		storageErr := errors.New("connection refused")
		storage := new(MockStorage)
		storage.On("StoreOrders", mock.Anything, orders).Return(storageErr)

		archive := service.NewOrderArchive(storage)
		err := archive.ArchiveOrders(t.Context(), orders)
		require.Error(t, err)
		assert.ErrorIs(t, err, storageErr)
	})

	t.Run("ContextCanceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		archive := service.NewOrderArchive(new(MockStorage))
		err := archive.ArchiveOrders(ctx, orders)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
