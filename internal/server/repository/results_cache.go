package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResultsCache holds serialized result aggregates per poll and
// ordering. Invalidate drops every cached ordering for a poll; the
// admission path calls it after each ledger write.
type ResultsCache interface {
	Get(ctx context.Context, pollID, orderBy string) ([]byte, bool)
	Set(ctx context.Context, pollID, orderBy string, payload []byte) error
	Invalidate(ctx context.Context, pollID string) error
}

type redisResultsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResultsCache(client *redis.Client, ttl time.Duration) ResultsCache {
	return &redisResultsCache{client: client, ttl: ttl}
}

func cacheKey(pollID, orderBy string) string {
	return "results:" + pollID + ":" + orderBy
}

func (c *redisResultsCache) Get(ctx context.Context, pollID, orderBy string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, cacheKey(pollID, orderBy)).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

func (c *redisResultsCache) Set(ctx context.Context, pollID, orderBy string, payload []byte) error {
	return c.client.Set(ctx, cacheKey(pollID, orderBy), payload, c.ttl).Err()
}

func (c *redisResultsCache) Invalidate(ctx context.Context, pollID string) error {
	return c.client.Del(ctx, cacheKey(pollID, "position"), cacheKey(pollID, "votes")).Err()
}
