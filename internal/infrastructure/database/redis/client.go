// Package redis provides the shared Redis connection used by the session
// memory store when the redis backend is configured.
package redis

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/swarakshak/vidhaan/internal/config"
	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/logging"
	"github.com/swarakshak/vidhaan/pkg/errors"
)

const connectTimeout = 5 * time.Second

// Client wraps a go-redis client with lifecycle management.
type Client struct {
	rdb    redis.UniversalClient
	logger logging.Logger
	mu     sync.RWMutex
	closed bool
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(cfg config.RedisConfig, log logging.Logger) (*Client, error) {
	if cfg.Addr == "" {
		return nil, errors.New(errors.ErrCodeValidation, "redis addr is required")
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	opts := &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = 10 * runtime.GOMAXPROCS(0)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = connectTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 3 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 3 * time.Second
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, errors.Wrap(err, errors.ErrCodeServiceUnavailable, "redis connection failed").
			WithDetail("addr=" + cfg.Addr)
	}

	log.Info("redis connected", logging.String("addr", cfg.Addr), logging.Int("db", cfg.DB))

	return &Client{rdb: rdb, logger: log}, nil
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return errors.New(errors.ErrCodeInternal, "redis client is closed")
	}
	return c.rdb.Ping(ctx).Err()
}

// Universal exposes the underlying client for stores built on top of it.
func (c *Client) Universal() redis.UniversalClient {
	return c.rdb
}

// Close releases the connection pool. Safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if err := c.rdb.Close(); err != nil {
		c.logger.Error("redis close failed", logging.Err(err))
		return err
	}
	c.logger.Info("redis connection closed")
	return nil
}
