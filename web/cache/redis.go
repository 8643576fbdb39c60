// Package cache connects the panel to redis for server-side sessions. It
// talks to an external server when an address is configured and starts an
// embedded miniredis otherwise.
package cache

import (
	"context"
	"fmt"

	"github.com/mhsanaei/memo/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type Redis struct {
	client *redis.Client
	mini   *miniredis.Miniredis
}

// Open connects to the redis server at addr. An empty addr starts an
// embedded instance that lives until Close.
func Open(ctx context.Context, addr string) (*Redis, error) {
	r := &Redis{}
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, fmt.Errorf("failed to start embedded redis: %w", err)
		}
		r.mini = mr
		addr = mr.Addr()
		logger.Info("embedded redis started on", addr)
	}

	r.client = redis.NewClient(&redis.Options{Addr: addr})
	if err := r.client.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	if r.mini == nil {
		logger.Info("connected to redis at", addr)
	}
	return r, nil
}

func (r *Redis) Client() *redis.Client {
	return r.client
}

func (r *Redis) IsEmbedded() bool {
	return r.mini != nil
}

func (r *Redis) Close() error {
	var err error
	if r.client != nil {
		err = r.client.Close()
	}
	if r.mini != nil {
		r.mini.Close()
	}
	return err
}
