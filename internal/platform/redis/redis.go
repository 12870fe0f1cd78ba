// Package redis opens the shared client used for sessions, flash messages
// and the entry-list cache.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options carries the connection settings the client is built from. Zero
// pool values fall back to conservative defaults.
type Options struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

const (
	dialTimeout = 3 * time.Second
	ioTimeout   = 2 * time.Second
	defaultPool = 10
	defaultIdle = 2
)

// New connects to Redis and verifies the connection with a ping before
// handing the client out.
func New(ctx context.Context, opts Options) (*redis.Client, error) {
	if opts.PoolSize <= 0 {
		opts.PoolSize = defaultPool
	}
	if opts.MinIdleConns <= 0 {
		opts.MinIdleConns = defaultIdle
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return client, nil
}
