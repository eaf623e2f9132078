package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/karibbean/cart-service/internal/core/domain"
	"github.com/karibbean/cart-service/pkg/schema"
	"github.com/shopspring/decimal"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type ConsumerClient interface {
	PollFetches(context.Context) kgo.Fetches
	CommitUncommittedOffsets(context.Context) error
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string,
) ProducerOpt {
	return func(opts *producerOpts) error {
		cl, err := kgo.NewClient(
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			return err
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func cartEventToSchemaV1(v domain.CartEvent) (s schema.CartEventV1) {
	s.Kind = string(v.Kind)
	s.ProductID = v.ProductID
	s.Name = v.Name
	s.Quantity = v.Quantity
	s.ItemCount = v.ItemCount
	s.OccurredAt = v.OccurredAt.UnixMilli()
	return
}

func orderToSchemaV1(v domain.Order) (s schema.OrderV1) {
	s.OrderID = v.ID
	s.Customer.Name = v.Customer.Name
	s.Customer.Email = v.Customer.Email
	s.Customer.Phone = v.Customer.Phone
	s.Customer.Address = v.Customer.Address
	s.Customer.PaymentMethod = v.Customer.PaymentMethod
	s.Customer.Notes = v.Customer.Notes
	s.Total = v.Total.StringFixed(2)
	s.PlacedAt = v.PlacedAt.UnixMilli()

	s.Items = make([]schema.OrderItemV1, len(v.Lines))
	for i, l := range v.Lines {
		s.Items[i].ProductID = l.Product.ID
		s.Items[i].Name = l.Product.Name
		s.Items[i].Price = l.Product.Price
		s.Items[i].Quantity = l.Quantity
	}
	return
}

func schemaV1ToOrder(s schema.OrderV1) (v domain.Order, err error) {
	v.ID = s.OrderID
	v.Customer.Name = s.Customer.Name
	v.Customer.Email = s.Customer.Email
	v.Customer.Phone = s.Customer.Phone
	v.Customer.Address = s.Customer.Address
	v.Customer.PaymentMethod = s.Customer.PaymentMethod
	v.Customer.Notes = s.Customer.Notes

	v.Total, err = decimal.NewFromString(s.Total)
	if err != nil {
		return domain.Order{}, err
	}
	v.PlacedAt = time.UnixMilli(s.PlacedAt)

	v.Lines = make([]domain.CartLine, len(s.Items))
	for i, it := range s.Items {
		v.Lines[i] = domain.CartLine{
			Product: domain.Product{
				ID:    it.ProductID,
				Name:  it.Name,
				Price: it.Price,
			},
			Quantity: it.Quantity,
		}
	}
	return v, nil
}
