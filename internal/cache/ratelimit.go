package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// FixedWindowLimiter conta requisições por chave em janelas de tamanho fixo.
type FixedWindowLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewFixedWindowLimiter(rdb *redis.Client, limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
		prefix: "salon:ratelimit",
	}
}

func (l *FixedWindowLimiter) Enabled() bool {
	return l != nil && l.rdb != nil && l.limit > 0
}

func (l *FixedWindowLimiter) Limit() int {
	return l.limit
}

func (l *FixedWindowLimiter) Key(scope, subject string, now time.Time) string {
	bucket := now.UnixNano() / int64(l.window)
	return fmt.Sprintf("%s:%s:%s:%d", l.prefix, scope, subject, bucket)
}

// Allow devolve quantas requisições restam na janela atual.
// Sem Redis tudo é permitido.
func (l *FixedWindowLimiter) Allow(ctx context.Context, scope, subject string) (bool, int, error) {
	if !l.Enabled() {
		return true, 0, nil
	}

	key := l.Key(scope, subject, time.Now())

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, 0, err
	}

	count := int(incr.Val())
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= l.limit, remaining, nil
}
