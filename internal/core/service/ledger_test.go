package service_test

import (
	"testing"

	"github.com/karibbean/cart-service/internal/core/domain"
	"github.com/karibbean/cart-service/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockLedger(t *testing.T) {
	t.Run("Lookup", func(t *testing.T) {
		ledger := service.NewStockLedger([]domain.StockEntry{
			{ProductID: 1, TotalStock: 10, Name: "Eternal Essence"},
			{ProductID: 2, TotalStock: 15, Name: "Silk Touch Lotion"},
		})

		entry, err := ledger.Lookup(1)
		require.NoError(t, err)
		assert.Equal(t, "Eternal Essence", entry.Name)
		assert.Equal(t, 10, entry.TotalStock)
	})

	t.Run("LookupUnknown", func(t *testing.T) {
		ledger := service.NewStockLedger(nil)

		_, err := ledger.Lookup(42)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnknownProduct)
	})

	t.Run("TotalStock", func(t *testing.T) {
		ledger := service.DefaultStockLedger()

		assert.Equal(t, 8, ledger.TotalStock(3))
		assert.Equal(t, 25, ledger.TotalStock(7))
		assert.Equal(t, 0, ledger.TotalStock(999))
	})

	t.Run("EntriesSorted", func(t *testing.T) {
		ledger := service.NewStockLedger([]domain.StockEntry{
			{ProductID: 9, TotalStock: 1, Name: "c"},
			{ProductID: 1, TotalStock: 1, Name: "a"},
			{ProductID: 5, TotalStock: 1, Name: "b"},
		})

		entries := ledger.Entries()
		require.Len(t, entries, 3)
		assert.Equal(t, 1, entries[0].ProductID)
		assert.Equal(t, 5, entries[1].ProductID)
		assert.Equal(t, 9, entries[2].ProductID)
	})

	t.Run("DefaultCatalogSize", func(t *testing.T) {
		assert.Len(t, service.DefaultStockLedger().Entries(), 21)
	})
}
