package service

import (
	"fmt"
	"sort"

	"github.com/karibbean/cart-service/internal/core/domain"
)

// A StockLedger answers how much of a product exists.
// It is populated once and read-only for the lifetime of the session.
type StockLedger struct {
	entries map[int]domain.StockEntry
}

func NewStockLedger(entries []domain.StockEntry) *StockLedger {
	m := make(map[int]domain.StockEntry, len(entries))
	for _, e := range entries {
		m[e.ProductID] = e
	}
	return &StockLedger{m}
}

func DefaultStockLedger() *StockLedger {
	return NewStockLedger(domain.DefaultCatalog())
}

func (l *StockLedger) Lookup(productID int) (domain.StockEntry, error) {
	const op = "StockLedger.Lookup"

	e, ok := l.entries[productID]
	if !ok {
		return domain.StockEntry{}, fmt.Errorf(
			"%s: product %d: %w", op, productID, domain.ErrUnknownProduct,
		)
	}
	return e, nil
}

// TotalStock returns 0 for products unknown to the ledger.
func (l *StockLedger) TotalStock(productID int) int {
	return l.entries[productID].TotalStock
}

func (l *StockLedger) Entries() []domain.StockEntry {
	es := make([]domain.StockEntry, 0, len(l.entries))
	for _, e := range l.entries {
		es = append(es, e)
	}
	sort.Slice(es, func(i, j int) bool {
		return es[i].ProductID < es[j].ProductID
	})
	return es
}
