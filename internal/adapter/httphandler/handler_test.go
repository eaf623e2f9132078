package httphandler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/karibbean/cart-service/internal/adapter/httphandler"
	"github.com/karibbean/cart-service/internal/core/domain"
	"github.com/karibbean/cart-service/internal/core/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	m map[string]string
}

func (s *stubStore) Get(_ context.Context, key string) (string, error) {
	v, ok := s.m[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (s *stubStore) Set(_ context.Context, key, value string) error {
	s.m[key] = value
	return nil
}

type MockOrderPlacer struct {
	mock.Mock
}

func (m *MockOrderPlacer) Checkout(
	ctx context.Context, c domain.Customer,
) (domain.Order, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.Order), args.Error(1)
}

type MockStatsReader struct {
	mock.Mock
}

func (m *MockStatsReader) ReservedQuantity(productID int) (int64, error) {
	args := m.Called(productID)
	return args.Get(0).(int64), args.Error(1)
}

func newCartMux(t *testing.T) (*http.ServeMux, *service.CartEngine) {
	t.Helper()
	engine := service.NewCartEngine(
		t.Context(),
		service.DefaultStockLedger(),
		&stubStore{m: make(map[string]string)},
		nil,
		"cart",
	)
	mux := http.NewServeMux()
	httphandler.RegisterCart(mux, engine)
	return mux, engine
}

func doJSON(
	mux *http.ServeMux, method, target, body string,
) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

const coconutDreamJSON = `{
	"id": 7, "name": "Coconut Dream", "price": 15, "image": "coconut.jpg"
}`

func TestCartHandler(t *testing.T) {
	t.Run("GetEmptyCart", func(t *testing.T) {
		mux, _ := newCartMux(t)

		w := doJSON(mux, http.MethodGet, "/v1/cart", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`{"items":[],"total":"0.00","item_count":0}`, w.Body.String(),
		)
	})

	t.Run("PostItem", func(t *testing.T) {
		mux, engine := newCartMux(t)

		w := doJSON(mux, http.MethodPost, "/v1/cart/items", coconutDreamJSON)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{
			"items": [{
				"product": {
					"id": 7, "name": "Coconut Dream",
					"price": 15, "image": "coconut.jpg"
				},
				"quantity": 1, "subtotal": "15.00", "remaining_stock": 24
			}],
			"total": "15.00",
			"item_count": 1
		}`, w.Body.String())

		assert.Equal(t, 1, engine.ItemCount())
	})

	t.Run("PostItemInvalidJSON", func(t *testing.T) {
		mux, _ := newCartMux(t)

		w := doJSON(mux, http.MethodPost, "/v1/cart/items", `{"id":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("PostItemOutOfStock", func(t *testing.T) {
		mux, _ := newCartMux(t)

		unknown := `{"id": 999, "name": "Ghost Orchid", "price": 1, "image": ""}`
		w := doJSON(mux, http.MethodPost, "/v1/cart/items", unknown)
		require.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t,
			`{"error":"out of stock","remaining":0}`, w.Body.String(),
		)
	})

	t.Run("PatchItem", func(t *testing.T) {
		mux, engine := newCartMux(t)
		doJSON(mux, http.MethodPost, "/v1/cart/items", coconutDreamJSON)

		w := doJSON(mux, http.MethodPatch, "/v1/cart/items/7", `{"delta": 2}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 3, engine.ReservedQuantity(7))
	})

	t.Run("PatchItemToZeroRemovesLine", func(t *testing.T) {
		mux, engine := newCartMux(t)
		doJSON(mux, http.MethodPost, "/v1/cart/items", coconutDreamJSON)

		w := doJSON(mux, http.MethodPatch, "/v1/cart/items/7", `{"delta": -1}`)
		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, engine.Snapshot())
	})

	t.Run("PatchAbsentLine", func(t *testing.T) {
		mux, _ := newCartMux(t)

		w := doJSON(mux, http.MethodPatch, "/v1/cart/items/7", `{"delta": 1}`)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("PatchItemBadID", func(t *testing.T) {
		mux, _ := newCartMux(t)

		w := doJSON(mux, http.MethodPatch, "/v1/cart/items/x", `{"delta": 1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("PatchItemExceedsStock", func(t *testing.T) {
		mux, _ := newCartMux(t)
		doJSON(mux, http.MethodPost, "/v1/cart/items", coconutDreamJSON)

		w := doJSON(mux, http.MethodPatch, "/v1/cart/items/7", `{"delta": 100}`)
		require.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t,
			`{"error":"out of stock","remaining":24}`, w.Body.String(),
		)
	})

	t.Run("DeleteItem", func(t *testing.T) {
		mux, engine := newCartMux(t)
		doJSON(mux, http.MethodPost, "/v1/cart/items", coconutDreamJSON)

		w := doJSON(mux, http.MethodDelete, "/v1/cart/items/7", "")
		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, engine.Snapshot())
	})

	t.Run("ClearCart", func(t *testing.T) {
		mux, engine := newCartMux(t)
		doJSON(mux, http.MethodPost, "/v1/cart/items", coconutDreamJSON)

		w := doJSON(mux, http.MethodDelete, "/v1/cart", "")
		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, engine.Snapshot())
	})

	t.Run("GetStock", func(t *testing.T) {
		mux, _ := newCartMux(t)
		doJSON(mux, http.MethodPost, "/v1/cart/items", coconutDreamJSON)

		w := doJSON(mux, http.MethodGet, "/v1/stock/7", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"product_id":7,"available":24}`, w.Body.String())
	})
}

func TestCheckoutHandler(t *testing.T) {
	checkoutBody := `{
		"name": "Jane Charles", "email": "jane@example.com",
		"phone": "+17581234567", "address": "12 Bay Street, Castries",
		"payment_method": "Cash on Delivery", "notes": ""
	}`

	t.Run("Regular", func(t *testing.T) {
		placer := new(MockOrderPlacer)
		placer.On("Checkout", mock.Anything, mock.Anything).Return(domain.Order{
			ID:    "7f9f84e2-52b0-4f66-9f4b-0a4df1f9a001",
			Total: decimal.RequireFromString("30.00"),
		}, nil)

		mux := http.NewServeMux()
		httphandler.RegisterCheckout(mux, placer)

		w := doJSON(mux, http.MethodPost, "/v1/checkout", checkoutBody)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"order_id": "7f9f84e2-52b0-4f66-9f4b-0a4df1f9a001",
			"total": "30.00"
		}`, w.Body.String())
	})

	t.Run("EmptyCart", func(t *testing.T) {
		placer := new(MockOrderPlacer)
		placer.On("Checkout", mock.Anything, mock.Anything).
			Return(domain.Order{}, domain.ErrEmptyCart)

		mux := http.NewServeMux()
		httphandler.RegisterCheckout(mux, placer)

		w := doJSON(mux, http.MethodPost, "/v1/checkout", checkoutBody)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("SubmitFailure", func(t *testing.T) {
		placer := new(MockOrderPlacer)
		placer.On("Checkout", mock.Anything, mock.Anything).
			Return(domain.Order{}, errors.New("gateway unavailable"))

		mux := http.NewServeMux()
		httphandler.RegisterCheckout(mux, placer)

		w := doJSON(mux, http.MethodPost, "/v1/checkout", checkoutBody)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestStatsHandler(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		stats := new(MockStatsReader)
		stats.On("ReservedQuantity", 7).Return(int64(4), nil)

		mux := http.NewServeMux()
		httphandler.RegisterStats(mux, stats)

		w := doJSON(mux, http.MethodGet, "/v1/stats/products/7", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"product_id":7,"reserved":4}`, w.Body.String())
	})

	t.Run("Unavailable", func(t *testing.T) {
		stats := new(MockStatsReader)
		stats.On("ReservedQuantity", 7).
			Return(int64(0), errors.New("view not ready"))

		mux := http.NewServeMux()
		httphandler.RegisterStats(mux, stats)

		w := doJSON(mux, http.MethodGet, "/v1/stats/products/7", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestAllowJSON(t *testing.T) {
	mux, _ := newCartMux(t)
	handler := httphandler.AllowJSON(mux)

	t.Run("RejectsOtherMediaTypes", func(t *testing.T) {
		r := httptest.NewRequest(
			http.MethodPost, "/v1/cart/items", strings.NewReader("id=7"),
		)
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})

	t.Run("AcceptsCharsetParameter", func(t *testing.T) {
		r := httptest.NewRequest(
			http.MethodPost, "/v1/cart/items",
			strings.NewReader(coconutDreamJSON),
		)
		r.Header.Set("Content-Type", "application/json; charset=utf-8")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("PassesBodylessRequests", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
