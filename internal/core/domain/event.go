package domain

import "time"

type CartEventKind string

const (
	CartEventItemAdded      CartEventKind = "item_added"
	CartEventItemRemoved    CartEventKind = "item_removed"
	CartEventQuantityChange CartEventKind = "quantity_changed"
	CartEventCleared        CartEventKind = "cart_cleared"
)

// A CartEvent describes one committed cart mutation.
type CartEvent struct {
	Kind       CartEventKind
	ProductID  int
	Name       string
	Quantity   int
	ItemCount  int
	OccurredAt time.Time
}

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// A Notice is a user-facing message emitted on engine operations.
type Notice struct {
	Message  string
	Severity Severity
}
