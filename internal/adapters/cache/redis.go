package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds the connection settings for the redis instance backing the
// habit-list cache and the API rate limiter.
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c Config) addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Connect opens a client and verifies the instance is reachable before
// handing it out. Callers treat a connection failure as "run without redis",
// so an unreachable instance must surface here rather than on first use.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     16,
		MinIdleConns: 4,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis unreachable at %s: %w", cfg.addr(), err)
	}

	return rdb, nil
}
