package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/karibbean/cart-service/internal/core/domain"
	"github.com/karibbean/cart-service/internal/core/port"
	"github.com/karibbean/cart-service/pkg/retry"
)

const submitAttempts = 3

var _ port.OrderPlacer = (*Checkout)(nil)

// A Checkout hands the final cart off to the order submitters.
// The submitted lines are removed from the cart only when every
// submitter reports success; a partial failure keeps the
// reservation intact.
type Checkout struct {
	engine     *CartEngine
	notifier   port.Notifier
	publisher  port.OrderPublisher
	submitters []port.OrderSubmitter
}

func NewCheckout(
	engine *CartEngine,
	notifier port.Notifier,
	publisher port.OrderPublisher,
	submitters ...port.OrderSubmitter,
) *Checkout {
	return &Checkout{engine, notifier, publisher, submitters}
}

func (c *Checkout) Checkout(
	ctx context.Context, customer domain.Customer,
) (domain.Order, error) {
	const op = "Checkout.Checkout"
	log := slog.With("op", op)

	lines := c.engine.Snapshot()
	if len(lines) == 0 {
		return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrEmptyCart)
	}

	order := domain.Order{
		ID:       uuid.NewString(),
		Customer: customer,
		Lines:    lines,
		Total:    domain.LinesTotal(lines),
		PlacedAt: time.Now(),
	}

	c.notify("Processing your order...", domain.SeverityInfo)

	if err := c.submit(ctx, order); err != nil {
		c.notify(
			"Order could not be submitted, your cart is unchanged.",
			domain.SeverityError,
		)
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	c.engine.Settle(ctx, order.Lines)

	if c.publisher != nil {
		if err := c.publisher.PublishOrder(ctx, order); err != nil {
			log.Error("failed to publish order", "orderID", order.ID, "err", err)
		}
	}

	c.notify("Order placed!", domain.SeveritySuccess)
	log.Info("order placed", "orderID", order.ID, "items", len(order.Lines))
	return order, nil
}

func (c *Checkout) submit(ctx context.Context, o domain.Order) error {
	cfg := retry.Config{MaxAttempts: submitAttempts}
	for _, s := range c.submitters {
		err := retry.Do(ctx, cfg, func() error {
			return s.SubmitOrder(ctx, o)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Checkout) notify(msg string, s domain.Severity) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(domain.Notice{Message: msg, Severity: s})
}

var _ port.OrderArchiver = (*OrderArchive)(nil)

// An OrderArchive forwards consumed orders to durable storage.
type OrderArchive struct {
	storage port.OrderStorage
}

func NewOrderArchive(storage port.OrderStorage) OrderArchive {
	return OrderArchive{storage}
}

func (a OrderArchive) ArchiveOrders(
	ctx context.Context, os []domain.Order,
) error {
	const op = "OrderArchive.ArchiveOrders"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := a.storage.StoreOrders(ctx, os); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
