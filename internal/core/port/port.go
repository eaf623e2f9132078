package port

import (
	"context"

	"github.com/karibbean/cart-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// A CartStore is the durable key-value store the cart is persisted to.
// Get returns domain.ErrNotFound when the key is absent.
type CartStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// A Notifier receives user-facing messages on engine operations.
type Notifier interface {
	Notify(n domain.Notice)
}

// A CartObserver receives a notification after every committed mutation.
type CartObserver interface {
	CartChanged(e domain.CartEvent)
}

type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, o domain.Order) error
}

type OrderPublisher interface {
	PublishOrder(ctx context.Context, o domain.Order) error
}

type OrderArchiver interface {
	ArchiveOrders(ctx context.Context, os []domain.Order) error
}

type OrderStorage interface {
	StoreOrders(ctx context.Context, os []domain.Order) error
}

// A CartService is the engine surface the inbound adapters call.
type CartService interface {
	Snapshot() []domain.CartLine
	Total() decimal.Decimal
	ItemCount() int
	AvailableStock(productID int) int
	AddItem(ctx context.Context, p domain.Product) error
	RemoveItem(ctx context.Context, productID int)
	SetQuantityDelta(ctx context.Context, productID, delta int) error
	Clear(ctx context.Context)
}

type OrderPlacer interface {
	Checkout(ctx context.Context, c domain.Customer) (domain.Order, error)
}

type ReservedStatsReader interface {
	ReservedQuantity(productID int) (int64, error)
}
