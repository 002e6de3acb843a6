package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisMedium stores each named entry as a plain Redis string key.
type RedisMedium struct {
	client *redis.Client
}

// NewRedisMedium wraps the given Redis client.
func NewRedisMedium(client *redis.Client) *RedisMedium {
	return &RedisMedium{client: client}
}

func (m *RedisMedium) Get(ctx context.Context, name string) ([]byte, error) {
	payload, err := m.client.Get(ctx, name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv get %s: %w", name, err)
	}
	return payload, nil
}

func (m *RedisMedium) Put(ctx context.Context, name string, payload []byte) error {
	// No TTL: entries survive until explicitly deleted.
	if err := m.client.Set(ctx, name, payload, 0).Err(); err != nil {
		return fmt.Errorf("kv put %s: %w", name, err)
	}
	return nil
}

func (m *RedisMedium) Delete(ctx context.Context, name string) error {
	if err := m.client.Del(ctx, name).Err(); err != nil {
		return fmt.Errorf("kv delete %s: %w", name, err)
	}
	return nil
}
