package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/buildy/tablemaker/internal/grid"
	"github.com/buildy/tablemaker/internal/jsonio"
)

// RedisCache stores the payload in Redis under payloadKey.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a cache over an existing Redis client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Load(ctx context.Context) (*jsonio.LegacyPayload, bool, error) {
	data, err := c.client.Get(ctx, payloadKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading payload cache: %w", err)
	}
	var p jsonio.LegacyPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, false, &grid.ParseError{Err: err}
	}
	return &p, true, nil
}

func (c *RedisCache) Save(ctx context.Context, payload *jsonio.LegacyPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload cache: %w", err)
	}
	if err := c.client.Set(ctx, payloadKey, data, 0).Err(); err != nil {
		return fmt.Errorf("writing payload cache: %w", err)
	}
	return nil
}
