package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/karibbean/cart-service/internal/core/domain"
	"github.com/karibbean/cart-service/internal/core/port"
)

var _ port.OrderStorage = (*OrdersRepository)(nil)

type OrdersRepository struct {
	sqldb sqldb
}

func NewOrdersRepository(sqldb sqldb) OrdersRepository {
	return OrdersRepository{sqldb}
}

type orderItemRow struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

func (r OrdersRepository) StoreOrders(
	ctx context.Context, vs []domain.Order,
) (storeErr error) {
	const op = "OrdersRepository.StoreOrders"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	defer func() {
		if storeErr == nil {
			if err := tx.Commit(); err != nil {
				storeErr = fmt.Errorf("%s: failed to commit: %w", op, err)
			}
			return
		}

		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	query := `
		INSERT INTO orders (
			order_id, customer_name, customer_email, customer_phone,
			customer_address, payment_method, notes,
			items, total, placed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (order_id) DO NOTHING;
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare stmt: %w", op, err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close prepared stmt", "err", err)
		}
	}()

	for _, v := range vs {
		items := make([]orderItemRow, 0, len(v.Lines))
		for _, l := range v.Lines {
			items = append(items, orderItemRow{
				ProductID: l.Product.ID,
				Name:      l.Product.Name,
				Price:     l.Product.Price,
				Quantity:  l.Quantity,
			})
		}
		itemsB, _ := json.Marshal(items)

		_, err := stmt.ExecContext(ctx,
			v.ID, v.Customer.Name, v.Customer.Email, v.Customer.Phone,
			v.Customer.Address, v.Customer.PaymentMethod, v.Customer.Notes,
			string(itemsB), v.Total.StringFixed(2), v.PlacedAt,
		)
		if err != nil {
			return fmt.Errorf("%s: failed to exec: %w", op, err)
		}
	}

	return nil
}
