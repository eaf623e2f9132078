package kafka

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/lovoo/goka"
)

// A ProductStatsView serves reads from the reserved quantity
// group table.
type ProductStatsView struct {
	gv *goka.View
}

func NewProductStatsView(
	seedBrokers []string, group string,
) (*ProductStatsView, error) {
	const op = "NewProductStatsView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(group)),
		ReservedValueCodec{},
	)
	if err != nil {
		return nil, opErr(err, op)
	}

	return &ProductStatsView{gv}, nil
}

func (v *ProductStatsView) Run(ctx context.Context) {
	const op = "ProductStatsView.Run"
	log := slog.With("op", op)

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

// ReservedQuantity returns 0 for products without table entries.
func (v *ProductStatsView) ReservedQuantity(productID int) (int64, error) {
	const op = "ProductStatsView.ReservedQuantity"

	val, err := v.gv.Get(strconv.Itoa(productID))
	if err != nil {
		return 0, opErr(err, op)
	}

	if val == nil {
		return 0, nil
	}

	rv, ok := val.(ReservedValue)
	if !ok {
		return 0, opErr(ErrInvalidValueType, op)
	}
	return int64(rv), nil
}
