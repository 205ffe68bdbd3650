// Package milvus provides the external vector index: corpus embeddings are
// mirrored into a Milvus collection and candidate-restricted similarity
// search runs server-side.  The in-process exact index remains the default;
// this backend serves deployments whose corpora outgrow it.
package milvus

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/milvus-io/milvus-sdk-go/v2/client"

	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/logging"
	"github.com/swarakshak/vidhaan/pkg/errors"
)

// newMilvusClient is swapped out in tests.
var newMilvusClient = client.NewClient

// Config holds the Milvus connection and collection settings.
type Config struct {
	Address        string
	Username       string
	Password       string
	DBName         string
	Collection     string
	Dimension      int
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
}

// Validate checks the connection settings.
func (c Config) Validate() error {
	if c.Address == "" {
		return errors.New(errors.ErrCodeValidation, "milvus address is required")
	}
	if c.Collection == "" {
		return errors.New(errors.ErrCodeValidation, "milvus collection is required")
	}
	if c.Dimension <= 0 {
		return errors.New(errors.ErrCodeValidation, "milvus vector dimension must be positive")
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.DBName == "" {
		c.DBName = "default"
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 10 * time.Second
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 30 * time.Second
	}
	return c
}

// Client manages one Milvus connection and its health state.
type Client struct {
	mc      client.Client
	cfg     Config
	log     logging.Logger
	healthy atomic.Bool

	closeOnce sync.Once
}

// NewClient connects to Milvus and verifies the connection.
func NewClient(cfg Config, log logging.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	if log == nil {
		log = logging.NewNopLogger()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	mc, err := newMilvusClient(ctx, client.Config{
		Address:  cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DBName:   cfg.DBName,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeVectorIndexFailed, "connecting to milvus").
			WithDetail("address=" + cfg.Address)
	}

	c := &Client{mc: mc, cfg: cfg, log: log}
	if err := c.CheckHealth(ctx); err != nil {
		c.Close()
		return nil, err
	}

	log.Info("milvus connected",
		logging.String("address", cfg.Address),
		logging.String("collection", cfg.Collection))
	return c, nil
}

// CheckHealth probes the server and updates the cached health flag.
func (c *Client) CheckHealth(ctx context.Context) error {
	if _, err := c.mc.CheckHealth(ctx); err != nil {
		c.healthy.Store(false)
		return errors.Wrap(err, errors.ErrCodeVectorIndexFailed, "milvus health check")
	}
	c.healthy.Store(true)
	return nil
}

// IsHealthy returns the last observed health state.
func (c *Client) IsHealthy() bool { return c.healthy.Load() }

// Close releases the connection.  Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		if err := c.mc.Close(); err != nil {
			c.log.Warn("milvus close failed", logging.Err(err))
		}
	})
}
