package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Option configures a Redis client.
type Option func(*options)

type options struct {
	poolSize      int
	minIdleConns  int
	retryAttempts int
	retryInterval time.Duration
	ioTimeout     time.Duration
	dialTimeout   time.Duration
}

func defaultOptions() *options {
	return &options{
		poolSize:      10,
		minIdleConns:  2,
		retryAttempts: 3,
		retryInterval: 2 * time.Second,
		ioTimeout:     3 * time.Second,
		dialTimeout:   5 * time.Second,
	}
}

// WithPoolSize sets the maximum and minimum idle connections of the pool.
// Default: 10 connections, 2 idle.
func WithPoolSize(size, minIdle int) Option {
	return func(o *options) {
		if size > 0 {
			o.poolSize = size
		}
		if minIdle >= 0 {
			o.minIdleConns = minIdle
		}
	}
}

// WithRetry configures how many times Open pings the server before giving up.
// The wait between attempts grows linearly with interval.
// Default: 3 attempts, 2 seconds.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(o *options) {
		o.retryAttempts = attempts
		o.retryInterval = interval
	}
}

// WithTimeouts sets the read/write timeout and the dial timeout.
// Zero values keep the defaults (3s and 5s).
func WithTimeouts(io, dial time.Duration) Option {
	return func(o *options) {
		if io > 0 {
			o.ioTimeout = io
		}
		if dial > 0 {
			o.dialTimeout = dial
		}
	}
}

// Open connects to the Redis server at url (redis:// or rediss://) and
// verifies the connection with PING.
//
// Example:
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"), redis.WithPoolSize(20, 5))
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrFailedToParseURL
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	ro, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}
	ro.PoolSize = o.poolSize
	ro.MinIdleConns = o.minIdleConns
	ro.ReadTimeout = o.ioTimeout
	ro.WriteTimeout = o.ioTimeout
	ro.DialTimeout = o.dialTimeout

	for i := range max(o.retryAttempts, 1) {
		client := redis.NewClient(ro)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		if err := wait(ctx, time.Duration(i+1)*o.retryInterval); err != nil {
			return nil, errors.Join(ErrConnectionFailed, err)
		}
	}

	return nil, ErrConnectionFailed
}

// Healthcheck returns a readiness check that pings the server.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown returns a shutdown hook that closes the client.
//
//	app.Run(":8080", mvc.ShutdownHook(redis.Shutdown(client)))
func Shutdown(client interface{ Close() error }) func(context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
