package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/karibbean/cart-service/internal/core/domain"
	"github.com/karibbean/cart-service/internal/core/port"
	"github.com/redis/go-redis/v9"
)

var _ port.CartStore = (*RedisCartStore)(nil)

// A RedisCartStore is the durable key-value store the cart engine
// persists to.
type RedisCartStore struct {
	cl *redis.Client
}

func NewRedisCartStore(
	ctx context.Context, addr, password string, db int,
) (RedisCartStore, error) {
	const op = "NewRedisCartStore"
	log := slog.With("op", op)

	cl := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := cl.Ping(ctx).Err(); err != nil {
		return RedisCartStore{}, fmt.Errorf(
			"%s: cart store is unavailable: %w", op, err,
		)
	}
	log.Info("cart store is available")
	return RedisCartStore{cl}, nil
}

func (s RedisCartStore) Get(ctx context.Context, key string) (string, error) {
	const op = "RedisCartStore.Get"

	v, err := s.cl.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func (s RedisCartStore) Set(ctx context.Context, key, value string) error {
	const op = "RedisCartStore.Set"

	if err := s.cl.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s RedisCartStore) Close() {
	const op = "RedisCartStore.Close"
	log := slog.With("op", op)

	log.Info("closing cart store...")
	if err := s.cl.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("cart store is closed")
}
