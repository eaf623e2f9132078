package kafka

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/karibbean/cart-service/internal/core/domain"
	"github.com/karibbean/cart-service/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(ctx context.Context, rs ...*kgo.Record) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// A CartEventsProducer produces [domain.CartEvent] keyed by product id.
type CartEventsProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewCartEventsProducer(opts ...ProducerOpt) (CartEventsProducer, error) {
	const op = "NewCartEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return CartEventsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "CartEventsProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return CartEventsProducer{
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p CartEventsProducer) Close() {
	p.producer.close()
}

func (p CartEventsProducer) ProduceCartEvent(
	ctx context.Context, v domain.CartEvent,
) error {
	const op = "ProduceCartEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(v)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, &r); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

func (p CartEventsProducer) createRecord(
	v domain.CartEvent,
) (kgo.Record, error) {
	const op = "createRecord"

	s := cartEventToSchemaV1(v)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return kgo.Record{}, opErr(err, p.opPrefix, op)
	}
	msgKey := []byte(strconv.Itoa(s.ProductID))
	return kgo.Record{Key: msgKey, Value: b}, nil
}

var _ port.OrderPublisher = (*OrdersProducer)(nil)

// An OrdersProducer produces placed [domain.Order] keyed by order id.
type OrdersProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewOrdersProducer(opts ...ProducerOpt) (OrdersProducer, error) {
	const op = "NewOrdersProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return OrdersProducer{}, opErr(err, op)
		}
	}

	opPrefix := "OrdersProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return OrdersProducer{
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p OrdersProducer) Close() {
	p.producer.close()
}

func (p OrdersProducer) PublishOrder(
	ctx context.Context, v domain.Order,
) error {
	const op = "PublishOrder"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	s := orderToSchemaV1(v)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r := kgo.Record{Key: []byte(s.OrderID), Value: b}
	if err := p.producer.produce(ctx, &r); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

const observerTimeout = 5 * time.Second

var _ port.CartObserver = (*CartEventsObserver)(nil)

// A CartEventsObserver bridges engine change notifications to the
// cart events topic. Publication is fire-and-forget so engine
// mutations never block on the broker.
type CartEventsObserver struct {
	producer CartEventsProducer
}

func NewCartEventsObserver(p CartEventsProducer) CartEventsObserver {
	return CartEventsObserver{p}
}

func (o CartEventsObserver) CartChanged(e domain.CartEvent) {
	const op = "CartEventsObserver.CartChanged"

	go func() {
		ctx, cancel := context.WithTimeout(
			context.Background(), observerTimeout,
		)
		defer cancel()

		if err := o.producer.ProduceCartEvent(ctx, e); err != nil {
			slog.Error("failed to produce cart event", "op", op, "err", err)
		}
	}()
}
