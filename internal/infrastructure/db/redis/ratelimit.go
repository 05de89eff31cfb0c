package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FixedWindowLimiter counts requests per caller in fixed time windows backed
// by Redis. Key format: ratelimit:<scope>:<caller>
//
// Every request increments the counter and arms the window TTL if the key
// does not carry one yet. The count is authoritative across processes because
// INCR is atomic.
type FixedWindowLimiter struct {
	client *redis.Client
	window time.Duration
}

// NewFixedWindowLimiter creates a limiter with the given window size.
func NewFixedWindowLimiter(client *redis.Client, window time.Duration) *FixedWindowLimiter {
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &FixedWindowLimiter{client: client, window: window}
}

// Allow reports whether the caller is still within max requests for the
// current window of the given scope. The increment and the window TTL travel
// in one transaction, and EXPIRE NX re-arms the TTL on every hit: a counter
// whose expiry was lost to a transient failure gets a fresh window instead of
// growing without bound.
func (l *FixedWindowLimiter) Allow(ctx context.Context, scope, caller string, max int) (bool, error) {
	key := l.key(scope, caller)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("ratelimit incr: %w", err)
	}
	return incr.Val() <= int64(max), nil
}

func (l *FixedWindowLimiter) key(scope, caller string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, caller)
}
