package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const pingTimeout = 3 * time.Second

// Client is the shared Redis connection pool used by the queue and caches.
type Client struct {
	*redis.Client
}

// Connect parses a redis:// URL, opens a pool and pings it.
// An empty URL returns (nil, nil); callers treat Redis as disabled.
func Connect(ctx context.Context, redisURL string, logger *zap.Logger) (*Client, error) {
	if redisURL == "" {
		logger.Info("redis disabled: REDIS_URL is empty")
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	c := &Client{Client: redis.NewClient(opts)}
	if err := c.Ping(ctx); err != nil {
		c.Close()
		return nil, err
	}

	logger.Info("redis connected", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return c, nil
}

func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
