package queue

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDriver backs the queue with a Redis list so multiple processes
// can share one queue. Push is LPUSH, Pop is BRPOP.
type RedisDriver struct {
	client *redis.Client
	key    string
}

// NewRedisDriver wraps an existing Redis client. Key is the list name.
func NewRedisDriver(client *redis.Client, key string) *RedisDriver {
	if key == "" {
		key = "stockroom:queue"
	}
	return &RedisDriver{client: client, key: key}
}

func (d *RedisDriver) Push(ctx context.Context, payload []byte) error {
	return d.client.LPush(ctx, d.key, payload).Err()
}

func (d *RedisDriver) Pop(ctx context.Context) ([]byte, error) {
	for {
		// Short timeout so ctx cancellation is observed promptly.
		res, err := d.client.BRPop(ctx, 2*time.Second, d.key).Result()
		if err == redis.Nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		// BRPOP returns [key, value].
		return []byte(res[1]), nil
	}
}

func (d *RedisDriver) Close() error {
	return nil
}
