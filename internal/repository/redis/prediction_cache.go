package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"smartPricer/domain"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 5 * time.Minute

// PredictionCache keeps the latest served prediction per product so the
// storefront can poll cheaply. Entries expire; the engine is the source of
// truth.
type PredictionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPredictionCache(client *redis.Client) *PredictionCache {
	return &PredictionCache{
		client: client,
		ttl:    defaultTTL,
	}
}

func cacheKey(productID uint64) string {
	return fmt.Sprintf("prediction:product:%d", productID)
}

// Get returns nil without error on a cache miss.
func (c *PredictionCache) Get(ctx context.Context, productID uint64) (*domain.ServingResponse, error) {
	val, err := c.client.Get(ctx, cacheKey(productID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prediction from redis: %w", err)
	}

	var resp domain.ServingResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached prediction: %w", err)
	}

	return &resp, nil
}

func (c *PredictionCache) Set(ctx context.Context, productID uint64, resp domain.ServingResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal prediction: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(productID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store prediction in redis: %w", err)
	}

	return nil
}
