package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptCounter counts requests per key inside a fixed window, backing the
// rate limiter on the credential endpoints.
// Key format: ratelimit:<scope>:<key>
type AttemptCounter struct {
	client *redis.Client
}

// NewAttemptCounter creates an AttemptCounter wrapping the given Redis client.
func NewAttemptCounter(client *redis.Client) *AttemptCounter {
	return &AttemptCounter{client: client}
}

// Incr bumps the counter for key within scope and returns the new count. The
// window TTL starts on the first hit.
func (a *AttemptCounter) Incr(ctx context.Context, scope, key string, window time.Duration) (int64, error) {
	redisKey := fmt.Sprintf("ratelimit:%s:%s", scope, key)
	count, err := a.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("attempt incr: %w", err)
	}
	if count == 1 {
		if err := a.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return count, fmt.Errorf("attempt expire: %w", err)
		}
	}
	return count, nil
}
