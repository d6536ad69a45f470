// Package redis wraps the go-redis client so repositories depend on a small
// interface that tests can swap for miniredis.
package redis

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// DefaultDialTimeout bounds the initial ping in Connect
const DefaultDialTimeout = 3 * time.Second

// Options configures Redis client behavior
type Options struct {
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	DialTimeout  time.Duration
	UseTLS       bool
}

// NewClient creates a client for a single Redis instance. go-redis connects
// lazily, so nothing is dialed here.
func NewClient(addr string, opts *Options) (Client, error) {
	if addr == "" {
		return nil, errors.InvalidArgument("redis: address is required")
	}

	if opts == nil {
		opts = &Options{}
	}

	redisOpts := &redis.Options{
		Addr:         addr,
		DB:           opts.DB,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
		MaxRetries:   opts.MaxRetries,
		DialTimeout:  opts.DialTimeout,
	}

	if opts.UseTLS {
		redisOpts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	return redis.NewClient(redisOpts), nil
}

// Connect creates a client and pings it so a bad address fails fast
func Connect(ctx context.Context, addr string, opts *Options) (Client, error) {
	client, err := NewClient(addr, opts)
	if err != nil {
		return nil, err
	}

	timeout := DefaultDialTimeout
	if opts != nil && opts.DialTimeout > 0 {
		timeout = opts.DialTimeout
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis: ping "+addr+" failed")
	}

	return client, nil
}
