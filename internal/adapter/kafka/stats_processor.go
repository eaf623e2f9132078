package kafka

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/karibbean/cart-service/internal/core/domain"
	"github.com/karibbean/cart-service/pkg/schema"
	"github.com/lovoo/goka"
)

// A cartEventCodec used for serde [schema.CartEventV1]
type cartEventCodec struct {
	serde Serde
}

func newCartEventCodec(s Serde) cartEventCodec {
	return cartEventCodec{s}
}

func (c cartEventCodec) Encode(v any) ([]byte, error) {
	const op = "cartEventCodec.Encode"
	if _, ok := v.(schema.CartEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c cartEventCodec) Decode(data []byte) (any, error) {
	const op = "cartEventCodec.Decode"
	var s schema.CartEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A ReservedValue is the per-product reserved quantity group table value.
type ReservedValue int64

type ReservedValueCodec struct{}

func (ReservedValueCodec) Encode(v any) ([]byte, error) {
	const op = "ReservedValueCodec.Encode"
	rv, ok := v.(ReservedValue)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	data := strconv.AppendInt([]byte(nil), int64(rv), 10)
	return data, nil
}

func (ReservedValueCodec) Decode(data []byte) (any, error) {
	const op = "ReservedValueCodec.Decode"
	iv, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return ReservedValue(iv), nil
}

// A ProductStatsProcessor folds the cart events stream into a
// compacted group table of reserved quantity per product.
type ProductStatsProcessor struct {
	gp *goka.Processor
}

func NewProductStatsProcessor(
	seedBrokers []string, stream, group string, cartEventSerde Serde,
) (*ProductStatsProcessor, error) {
	const op = "NewProductStatsProcessor"
	p := &ProductStatsProcessor{}

	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(goka.Stream(stream), newCartEventCodec(cartEventSerde), p.processFn),
		goka.Persist(ReservedValueCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg)
	if err != nil {
		return nil, opErr(err, op)
	}

	p.gp = gp
	return p, nil
}

func (p *ProductStatsProcessor) Run(ctx context.Context) {
	const op = "ProductStatsProcessor.Run"
	log := slog.With("op", op)

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *ProductStatsProcessor) Close() {
	const op = "ProductStatsProcessor.Close"
	log := slog.With("op", op)

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

func (p *ProductStatsProcessor) processFn(ctx goka.Context, msg any) {
	const op = "ProductStatsProcessor.processFn"

	ev, ok := msg.(schema.CartEventV1)
	if !ok {
		slog.Error("unexpected message type", "op", op)
		return
	}

	// Cleared markers carry no product key; the engine emits a
	// removal per line ahead of them, so the marker itself folds
	// into no table update.
	switch domain.CartEventKind(ev.Kind) {
	case domain.CartEventItemAdded, domain.CartEventQuantityChange:
		ctx.SetValue(ReservedValue(ev.Quantity))
	case domain.CartEventItemRemoved:
		ctx.SetValue(ReservedValue(0))
	}
}
