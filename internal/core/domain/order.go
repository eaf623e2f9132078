package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	Name          string
	Email         string
	Phone         string
	Address       string
	PaymentMethod string
	Notes         string
}

// An Order is the final cart contents handed off to submission collaborators.
type Order struct {
	ID       string
	Customer Customer
	Lines    []CartLine
	Total    decimal.Decimal
	PlacedAt time.Time
}
