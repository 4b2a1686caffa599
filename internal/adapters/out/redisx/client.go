// Package redisx provides the Redis client and the event bridge that
// republishes order events to a Redis channel for other instances.
package redisx

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// New creates a Redis client for the given address with bounded
// dial and command timeouts, so a slow broker cannot stall publishers.
func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}
