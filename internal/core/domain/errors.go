package domain

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfStock     = errors.New("out of stock")
	ErrUnknownProduct = errors.New("unknown product")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrNotFound       = errors.New("not found")
)

// An OutOfStockError reports a reservation that would exceed total stock.
// Remaining is the still-available quantity for user messaging.
type OutOfStockError struct {
	ProductID int
	Name      string
	Remaining int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf(
		"product %d %q out of stock: %d remaining",
		e.ProductID, e.Name, e.Remaining,
	)
}

func (e *OutOfStockError) Is(target error) bool {
	return target == ErrOutOfStock
}
