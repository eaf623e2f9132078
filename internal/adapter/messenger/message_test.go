package messenger

import (
	"testing"
	"time"

	"github.com/karibbean/cart-service/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testOrder(notes string) domain.Order {
	return domain.Order{
		ID: "7f9f84e2-52b0-4f66-9f4b-0a4df1f9a001",
		Customer: domain.Customer{
			Name:          "Jane Charles",
			Email:         "jane@example.com",
			Phone:         "+17581234567",
			Address:       "12 Bay Street, Castries",
			PaymentMethod: "Cash on Delivery",
			Notes:         notes,
		},
		Lines: []domain.CartLine{
			{
				Product:  domain.Product{ID: 7, Name: "Coconut Dream", Price: 15},
				Quantity: 2,
			},
			{
				Product:  domain.Product{ID: 3, Name: "Velvet Rose", Price: 45.99},
				Quantity: 1,
			},
		},
		Total:    decimal.RequireFromString("75.99"),
		PlacedAt: time.Date(2026, time.August, 29, 10, 30, 0, 0, time.UTC),
	}
}

func TestOrderMessage(t *testing.T) {
	t.Run("WithNotes", func(t *testing.T) {
		got := orderMessage("Karibbean Dealz", testOrder("Call on arrival"))

		want := "*NEW ORDER - Karibbean Dealz*\n" +
			"\n" +
			"*Customer Information:*\n" +
			"Name: Jane Charles\n" +
			"Email: jane@example.com\n" +
			"Phone: +17581234567\n" +
			"Address: 12 Bay Street, Castries\n" +
			"Payment Method: Cash on Delivery\n" +
			"\n" +
			"*Order Details:*\n" +
			"- Coconut Dream x 2 - $30.00\n" +
			"- Velvet Rose x 1 - $45.99\n" +
			"\n" +
			"*Order Total: $75.99*\n" +
			"Order Date: 08/29/2026\n" +
			"\n" +
			"*Customer Notes:*\n" +
			"Call on arrival\n" +
			"\n" +
			"_This order was placed through the Karibbean Dealz website._"

		assert.Equal(t, want, got)
	})

	t.Run("WithoutNotes", func(t *testing.T) {
		got := orderMessage("Karibbean Dealz", testOrder(""))

		assert.NotContains(t, got, "*Customer Notes:*")
		assert.Contains(t, got, "*Order Total: $75.99*")
	})
}

func TestOrderItemLines(t *testing.T) {
	got := orderItemLines(testOrder(""))

	want := "Coconut Dream - Qty: 2 - $30.00\n" +
		"Velvet Rose - Qty: 1 - $45.99"
	assert.Equal(t, want, got)
}

func TestOrderNotes(t *testing.T) {
	assert.Equal(t, "Call on arrival", orderNotes(testOrder("Call on arrival")))
	assert.Equal(t, "No additional notes", orderNotes(testOrder("")))
}
