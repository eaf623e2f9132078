package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/karibbean/cart-service/internal/core/domain"
	"github.com/karibbean/cart-service/internal/core/port"
)

// POST   v1/cart/items JSON product (201 Created, 400 Bad request, 409 Conflict)
// PATCH  v1/cart/items/{id} JSON {"delta" int} (200 OK, 204 No content, 409 Conflict)
// DELETE v1/cart/items/{id} (204 No content)
// GET    v1/cart (200 OK)
// DELETE v1/cart (204 No content)
// GET    v1/stock/{id} (200 OK)

type CartHandler struct {
	cart port.CartService
}

func RegisterCart(mux *http.ServeMux, cart port.CartService) {
	h := CartHandler{cart}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("DELETE /v1/cart", h.ClearCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PATCH /v1/cart/items/{id}", h.PatchItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.DeleteItem)
	mux.HandleFunc("GET /v1/stock/{id}", h.GetStock)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	if err := writeJSON(w, http.StatusOK, h.toCartView()); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var p Product
	err := json.NewDecoder(r.Body).Decode(&p)
	if err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	err = h.cart.AddItem(r.Context(), domain.Product{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Image: p.Image,
	})
	if err != nil {
		h.writeReserveErr(w, err, op)
		return
	}

	if err := writeJSON(w, http.StatusCreated, h.toCartView()); err != nil {
		log.Error("failed to write response body", "err", err)
		return
	}

	log.Info("item added", "productID", p.ID)
}

func (h CartHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PatchItem"
	log := slog.With("op", op)

	productID, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var qd QuantityDelta
	if err := json.NewDecoder(r.Body).Decode(&qd); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	err = h.cart.SetQuantityDelta(r.Context(), productID, qd.Delta)
	if err != nil {
		h.writeReserveErr(w, err, op)
		return
	}

	v := h.toCartView()
	if !v.hasItem(productID) {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := writeJSON(w, http.StatusOK, v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	h.cart.RemoveItem(r.Context(), productID)
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetStock"
	log := slog.With("op", op)

	productID, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	v := Stock{
		ProductID: productID,
		Available: h.cart.AvailableStock(productID),
	}
	if err := writeJSON(w, http.StatusOK, v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func (h CartHandler) writeReserveErr(
	w http.ResponseWriter, err error, op string,
) {
	log := slog.With("op", op)

	var oosErr *domain.OutOfStockError
	if errors.As(err, &oosErr) {
		v := OutOfStock{Error: "out of stock", Remaining: oosErr.Remaining}
		if err := writeJSON(w, http.StatusConflict, v); err != nil {
			log.Error("failed to write response body", "err", err)
		}
		return
	}

	http.Error(w, "failed to update cart", http.StatusInternalServerError)
	log.Error("failed to update cart", "err", err)
}

func (h CartHandler) toCartView() Cart {
	lines := h.cart.Snapshot()

	v := Cart{
		Items:     make([]CartLine, 0, len(lines)),
		Total:     h.cart.Total().StringFixed(2),
		ItemCount: h.cart.ItemCount(),
	}

	for _, l := range lines {
		v.Items = append(v.Items, CartLine{
			Product: Product{
				ID:    l.Product.ID,
				Name:  l.Product.Name,
				Price: l.Product.Price,
				Image: l.Product.Image,
			},
			Quantity:       l.Quantity,
			Subtotal:       l.Subtotal().StringFixed(2),
			RemainingStock: h.cart.AvailableStock(l.Product.ID),
		})
	}
	return v
}

// POST v1/checkout JSON customer (200 OK, 400 Bad request, 409 Conflict, 502 Bad gateway)

type CheckoutHandler struct {
	placer port.OrderPlacer
}

func RegisterCheckout(mux *http.ServeMux, placer port.OrderPlacer) {
	h := CheckoutHandler{placer}
	mux.HandleFunc("POST /v1/checkout", h.PostCheckout)
}

func (h CheckoutHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.PostCheckout"
	log := slog.With("op", op)

	var c Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	order, err := h.placer.Checkout(r.Context(), domain.Customer{
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		PaymentMethod: c.PaymentMethod,
		Notes:         c.Notes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			http.Error(w, "cart is empty", http.StatusConflict)
			return
		}
		http.Error(w, "failed to submit order", http.StatusBadGateway)
		log.Error("failed to submit order", "err", err)
		return
	}

	v := OrderPlaced{OrderID: order.ID, Total: order.Total.StringFixed(2)}
	if err := writeJSON(w, http.StatusOK, v); err != nil {
		log.Error("failed to write response body", "err", err)
		return
	}

	log.Info("order placed", "orderID", order.ID)
}

// GET v1/stats/products/{id} (200 OK, 503 Service unavailable)

type StatsHandler struct {
	stats port.ReservedStatsReader
}

func RegisterStats(mux *http.ServeMux, stats port.ReservedStatsReader) {
	h := StatsHandler{stats}
	mux.HandleFunc("GET /v1/stats/products/{id}", h.GetProductStats)
}

func (h StatsHandler) GetProductStats(w http.ResponseWriter, r *http.Request) {
	const op = "StatsHandler.GetProductStats"
	log := slog.With("op", op)

	productID, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	reserved, err := h.stats.ReservedQuantity(productID)
	if err != nil {
		http.Error(w, "stats unavailable", http.StatusServiceUnavailable)
		log.Error("failed to read stats", "err", err)
		return
	}

	v := ReservedStats{ProductID: productID, Reserved: reserved}
	if err := writeJSON(w, http.StatusOK, v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("id"))
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
