package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Client is the platform handle for Redis. The user cache is its only
// consumer.
type Client struct {
	*redis.Client
}

// Open dials Redis and verifies the connection with a ping before handing
// the client out.
func Open(ctx context.Context, addr, password string, db int) (*Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis addr is empty")
	}

	c := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{Client: c}, nil
}
