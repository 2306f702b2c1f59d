package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/startupscout/showcase/internal/pkg/config"
)

const pingTimeout = 3 * time.Second

// clientOptions maps the SCOUT_REDIS_* settings onto go-redis options.
func clientOptions(rc config.RedisConfig) *redis.Options {
	opts := &redis.Options{
		Addr:     rc.Addr,
		Username: rc.Username,
		Password: rc.Password,
		DB:       rc.DB,
		PoolSize: 2,
	}
	if rc.DialTimeout > 0 {
		opts.DialTimeout = rc.DialTimeout
	}
	return opts
}

// Connect opens a client for the credential store and checks the server
// answers before any credential is read from it.
func Connect(ctx context.Context, rc config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(clientOptions(rc))

	wait := pingTimeout
	if rc.DialTimeout > 0 && rc.DialTimeout < wait {
		wait = rc.DialTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s db %d: %w", rc.Addr, rc.DB, err)
	}
	return client, nil
}
