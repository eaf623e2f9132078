package domain

import "github.com/shopspring/decimal"

// A CartLine is one product entry in the cart with its reserved quantity.
type CartLine struct {
	Product  Product
	Quantity int
}

func (l CartLine) Subtotal() decimal.Decimal {
	price := decimal.NewFromFloat(l.Product.Price)
	return price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LinesTotal sums price*quantity over the lines,
// rounded half-up to 2 decimal places for currency display.
func LinesTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total.Round(2)
}

func LinesItemCount(lines []CartLine) int {
	var n int
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}
