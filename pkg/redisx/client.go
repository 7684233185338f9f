package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/danghamo/zoo/pkg/logger"
)

const defaultPingTimeout = 5 * time.Second

// Client wraps redis.Client for the redis stream event backend
type Client struct {
	*redis.Client
	logger *logger.Logger
}

// ClientOption represents an option for creating a new Redis client
type ClientOption func(*clientOptions)

type clientOptions struct {
	pingTimeout time.Duration
	skipPing    bool
}

// WithPingTimeout bounds the connection check done by NewClient
func WithPingTimeout(d time.Duration) ClientOption {
	return func(opts *clientOptions) {
		opts.pingTimeout = d
	}
}

// WithoutPing skips the connection check; the first command dials lazily
func WithoutPing() ClientOption {
	return func(opts *clientOptions) {
		opts.skipPing = true
	}
}

// NewClient creates a Redis client from a redis:// URL
func NewClient(redisURL string, log *logger.Logger, opts ...ClientOption) (*Client, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis URL cannot be empty")
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	options := &clientOptions{pingTimeout: defaultPingTimeout}
	for _, opt := range opts {
		opt(options)
	}

	redisOptions, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := &Client{
		Client: redis.NewClient(redisOptions),
		logger: log.WithComponent("redisx"),
	}

	if !options.skipPing {
		ctx, cancel := context.WithTimeout(context.Background(), options.pingTimeout)
		defer cancel()

		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Client.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
	}

	client.logger.Info("Redis client ready",
		zap.String("addr", redisOptions.Addr),
		zap.Int("db", redisOptions.DB),
		zap.Bool("pinged", !options.skipPing),
	)

	return client, nil
}

// Close closes the Redis client connection
func (c *Client) Close() error {
	c.logger.Info("Closing Redis connection")
	return c.Client.Close()
}

// HealthCheck pings Redis and logs the round trip
func (c *Client) HealthCheck(ctx context.Context) error {
	start := time.Now()
	err := c.Ping(ctx).Err()
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("Redis health check failed",
			zap.Error(err),
			zap.Duration("duration", duration),
		)
		return err
	}

	c.logger.Debug("Redis health check passed", zap.Duration("duration", duration))
	return nil
}

// StreamLength returns the number of entries in the stream backing topic
func (c *Client) StreamLength(ctx context.Context, topic string) (int64, error) {
	n, err := c.XLen(ctx, topic).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read stream length for %s: %w", topic, err)
	}
	return n, nil
}

// SetJSON stores v as JSON under key with the given ttl (0 keeps it forever)
func (c *Client) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return c.Set(ctx, key, data, ttl).Err()
}

// GetJSON loads the JSON stored under key into v. It reports false when the key does not exist.
func (c *Client) GetJSON(ctx context.Context, key string, v any) (bool, error) {
	data, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}
