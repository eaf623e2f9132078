package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/karibbean/cart-service/internal/core/domain"
	"github.com/karibbean/cart-service/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.CartService = (*CartEngine)(nil)

// A CartEngine owns the ordered cart line sequence and enforces the
// stock invariant on every mutation: for each line
// 1 <= quantity <= ledger total stock, one line per product.
//
// Every committed mutation is persisted to the cart store under one
// fixed key and announced to the registered observers. Persistence
// failures are logged and dropped, never surfaced to the caller.
type CartEngine struct {
	mu        sync.Mutex
	ledger    *StockLedger
	store     port.CartStore
	notifier  port.Notifier
	storeKey  string
	lines     []domain.CartLine
	observers []port.CartObserver
}

// A cartRecord is the persisted line shape, compatible with carts
// saved by earlier storefront releases.
type cartRecord struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// NewCartEngine restores the cart persisted under storeKey.
// A missing or corrupt payload yields an empty cart.
func NewCartEngine(
	ctx context.Context,
	ledger *StockLedger,
	store port.CartStore,
	notifier port.Notifier,
	storeKey string,
) *CartEngine {
	e := &CartEngine{
		ledger:   ledger,
		store:    store,
		notifier: notifier,
		storeKey: storeKey,
	}
	e.load(ctx)
	return e
}

// AddObserver registers an observer for committed mutations.
// Not safe to call after the engine started serving operations.
func (e *CartEngine) AddObserver(o port.CartObserver) {
	e.observers = append(e.observers, o)
}

// AvailableStock returns total stock minus the reserved quantity,
// 0 for products unknown to the ledger.
func (e *CartEngine) AvailableStock(productID int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.availableStock(productID)
}

// CanReserve reports whether the new total reserved amount
// would still fit into total stock. Requesting zero is always
// reservable for known products.
func (e *CartEngine) CanReserve(productID, requestedQuantity int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, err := e.ledger.Lookup(productID)
	if err != nil {
		return false
	}
	newTotal := e.reserved(productID) + requestedQuantity
	return newTotal >= 0 && newTotal <= entry.TotalStock
}

func (e *CartEngine) ReservedQuantity(productID int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reserved(productID)
}

// AddItem appends a new line with quantity 1, or increments the
// existing line in place. Returns *domain.OutOfStockError when the
// reservation would exceed total stock; state is unchanged then.
func (e *CartEngine) AddItem(ctx context.Context, p domain.Product) error {
	const op = "CartEngine.AddItem"

	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.lineIndex(p.ID)
	if i < 0 {
		if !e.fits(p.ID, 1) {
			e.notify(fmt.Sprintf(
				"Sorry, %s is out of stock!", p.Name,
			), domain.SeverityError)
			return fmt.Errorf("%s: %w", op, e.outOfStockErr(p.ID, p.Name))
		}
		e.lines = append(e.lines, domain.CartLine{Product: p, Quantity: 1})
	} else {
		q := e.lines[i].Quantity
		if !e.fits(p.ID, q+1) {
			e.notify(fmt.Sprintf(
				"Only %d %s left in stock!", e.availableStock(p.ID), p.Name,
			), domain.SeverityWarning)
			return fmt.Errorf("%s: %w", op, e.outOfStockErr(p.ID, p.Name))
		}
		e.lines[i].Quantity = q + 1
	}

	e.commit(ctx, domain.CartEvent{
		Kind:      domain.CartEventItemAdded,
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  e.reserved(p.ID),
	})
	e.notify(fmt.Sprintf("%s added to cart!", p.Name), domain.SeveritySuccess)
	return nil
}

// RemoveItem deletes the line for productID. Removing an absent
// line is a no-op, not an error; the cart is persisted either way.
func (e *CartEngine) RemoveItem(ctx context.Context, productID int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.removeLine(ctx, productID)
	e.notify("Item removed from cart", domain.SeverityInfo)
}

// SetQuantityDelta adjusts the line quantity by delta. Driving the
// quantity to zero or below removes the line; exceeding total stock
// returns *domain.OutOfStockError with state unchanged. An absent
// line is a no-op.
func (e *CartEngine) SetQuantityDelta(
	ctx context.Context, productID, delta int,
) error {
	const op = "CartEngine.SetQuantityDelta"

	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.lineIndex(productID)
	if i < 0 {
		return nil
	}

	newQuantity := e.lines[i].Quantity + delta
	if newQuantity <= 0 {
		e.removeLine(ctx, productID)
		e.notify("Item removed from cart", domain.SeverityInfo)
		return nil
	}

	if !e.fits(productID, newQuantity) {
		name := e.lines[i].Product.Name
		e.notify(fmt.Sprintf(
			"Only %d items left in stock!", e.availableStock(productID),
		), domain.SeverityWarning)
		return fmt.Errorf("%s: %w", op, e.outOfStockErr(productID, name))
	}

	e.lines[i].Quantity = newQuantity
	e.commit(ctx, domain.CartEvent{
		Kind:      domain.CartEventQuantityChange,
		ProductID: productID,
		Name:      e.lines[i].Product.Name,
		Quantity:  newQuantity,
	})
	return nil
}

// Total is the sum of price*quantity over all lines,
// rounded half-up to 2 decimal places.
func (e *CartEngine) Total() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.LinesTotal(e.lines)
}

// ItemCount is the sum of quantities across all lines.
func (e *CartEngine) ItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.LinesItemCount(e.lines)
}

// Clear empties the cart. Clearing an empty cart is a valid no-op.
// A removal event per line precedes the cleared marker, keeping
// per-product downstream aggregates in step.
func (e *CartEngine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	evs := make([]domain.CartEvent, 0, len(e.lines)+1)
	for _, l := range e.lines {
		evs = append(evs, domain.CartEvent{
			Kind:      domain.CartEventItemRemoved,
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
		})
	}
	evs = append(evs, domain.CartEvent{Kind: domain.CartEventCleared})

	e.lines = nil
	e.commit(ctx, evs...)
}

// Settle removes the submitted quantities from the cart. Lines and
// quantity added after the submitted snapshot was taken stay in the
// cart; a line driven to zero is removed. The cleared marker is
// emitted only when the cart ends up empty.
func (e *CartEngine) Settle(ctx context.Context, submitted []domain.CartLine) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var evs []domain.CartEvent
	for _, s := range submitted {
		i := e.lineIndex(s.Product.ID)
		if i < 0 {
			continue
		}

		q := e.lines[i].Quantity - s.Quantity
		if q <= 0 {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			evs = append(evs, domain.CartEvent{
				Kind:      domain.CartEventItemRemoved,
				ProductID: s.Product.ID,
				Name:      s.Product.Name,
			})
			continue
		}

		e.lines[i].Quantity = q
		evs = append(evs, domain.CartEvent{
			Kind:      domain.CartEventQuantityChange,
			ProductID: s.Product.ID,
			Name:      s.Product.Name,
			Quantity:  q,
		})
	}

	if len(e.lines) == 0 {
		evs = append(evs, domain.CartEvent{Kind: domain.CartEventCleared})
	}
	e.commit(ctx, evs...)
}

// Snapshot returns a read-only copy of the line sequence
// in insertion order.
func (e *CartEngine) Snapshot() []domain.CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()

	lines := make([]domain.CartLine, len(e.lines))
	copy(lines, e.lines)
	return lines
}

func (e *CartEngine) lineIndex(productID int) int {
	for i, l := range e.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (e *CartEngine) reserved(productID int) int {
	if i := e.lineIndex(productID); i >= 0 {
		return e.lines[i].Quantity
	}
	return 0
}

func (e *CartEngine) availableStock(productID int) int {
	return e.ledger.TotalStock(productID) - e.reserved(productID)
}

// fits reports whether newTotal reserved units of the product
// stay within the ledger's total stock.
func (e *CartEngine) fits(productID, newTotal int) bool {
	entry, err := e.ledger.Lookup(productID)
	if err != nil {
		return false
	}
	return newTotal >= 1 && newTotal <= entry.TotalStock
}

func (e *CartEngine) outOfStockErr(productID int, name string) error {
	return &domain.OutOfStockError{
		ProductID: productID,
		Name:      name,
		Remaining: e.availableStock(productID),
	}
}

func (e *CartEngine) removeLine(ctx context.Context, productID int) {
	var name string
	if i := e.lineIndex(productID); i >= 0 {
		name = e.lines[i].Product.Name
		e.lines = append(e.lines[:i], e.lines[i+1:]...)
	}
	e.commit(ctx, domain.CartEvent{
		Kind:      domain.CartEventItemRemoved,
		ProductID: productID,
		Name:      name,
	})
}

// commit persists the cart and announces the mutation events.
// ItemCount reflects the state after the mutation. Callers hold
// the mutex.
func (e *CartEngine) commit(ctx context.Context, evs ...domain.CartEvent) {
	e.persist(ctx)

	itemCount := domain.LinesItemCount(e.lines)
	now := time.Now()
	for _, ev := range evs {
		ev.ItemCount = itemCount
		ev.OccurredAt = now
		for _, o := range e.observers {
			o.CartChanged(ev)
		}
	}
}

func (e *CartEngine) persist(ctx context.Context) {
	const op = "CartEngine.persist"
	log := slog.With("op", op)

	rs := make([]cartRecord, 0, len(e.lines))
	for _, l := range e.lines {
		rs = append(rs, cartRecord{
			ID:       l.Product.ID,
			Name:     l.Product.Name,
			Price:    l.Product.Price,
			Image:    l.Product.Image,
			Quantity: l.Quantity,
		})
	}

	b, err := json.Marshal(rs)
	if err != nil {
		log.Error("failed to encode cart", "err", err)
		return
	}

	if err := e.store.Set(ctx, e.storeKey, string(b)); err != nil {
		log.Error("failed to persist cart", "err", err)
	}
}

func (e *CartEngine) load(ctx context.Context) {
	const op = "CartEngine.load"
	log := slog.With("op", op)

	v, err := e.store.Get(ctx, e.storeKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Warn("failed to read persisted cart", "err", err)
		}
		return
	}

	var rs []cartRecord
	if err := json.Unmarshal([]byte(v), &rs); err != nil {
		log.Warn("corrupt persisted cart, starting empty", "err", err)
		return
	}

	e.lines = e.sanitize(rs)
}

// sanitize repairs a persisted cart against the current ledger:
// unknown products and duplicate lines are dropped, quantities are
// clamped to [1, totalStock].
func (e *CartEngine) sanitize(rs []cartRecord) []domain.CartLine {
	var lines []domain.CartLine
	seen := make(map[int]bool, len(rs))
	for _, r := range rs {
		entry, err := e.ledger.Lookup(r.ID)
		if err != nil || seen[r.ID] || r.Quantity < 1 {
			continue
		}
		seen[r.ID] = true

		q := min(r.Quantity, entry.TotalStock)
		lines = append(lines, domain.CartLine{
			Product: domain.Product{
				ID:    r.ID,
				Name:  r.Name,
				Price: r.Price,
				Image: r.Image,
			},
			Quantity: q,
		})
	}
	return lines
}

func (e *CartEngine) notify(msg string, s domain.Severity) {
	if e.notifier == nil {
		return
	}
	e.notifier.Notify(domain.Notice{Message: msg, Severity: s})
}
