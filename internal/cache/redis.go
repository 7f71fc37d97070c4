package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fitprofile/internal/profile"

	"github.com/redis/go-redis/v9"
)

// RedisClient caches profile state snapshots keyed by user.
type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(ctx context.Context, redisURL string, ttl time.Duration) (*RedisClient, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisClientWith(client, ttl), nil
}

func NewRedisClientWith(client *redis.Client, ttl time.Duration) *RedisClient {
	return &RedisClient{client: client, ttl: ttl}
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func stateKey(userID uint) string {
	return fmt.Sprintf("profile:state:%d", userID)
}

func (r *RedisClient) Get(ctx context.Context, userID uint) (profile.State, bool, error) {
	data, err := r.client.Get(ctx, stateKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return profile.State{}, false, nil
		}
		return profile.State{}, false, fmt.Errorf("failed to get state from Redis: %w", err)
	}

	var st profile.State
	if err := json.Unmarshal(data, &st); err != nil {
		return profile.State{}, false, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return st, true, nil
}

func (r *RedisClient) Set(ctx context.Context, userID uint, st profile.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := r.client.Set(ctx, stateKey(userID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store state in Redis: %w", err)
	}
	return nil
}

func (r *RedisClient) Delete(ctx context.Context, userID uint) error {
	return r.client.Del(ctx, stateKey(userID)).Err()
}

// Status reports connection pool figures for the debug endpoint.
func (r *RedisClient) Status(ctx context.Context) (map[string]interface{}, error) {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	stats := r.client.PoolStats()
	return map[string]interface{}{
		"connected":   true,
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
		"ttl_seconds": r.ttl.Seconds(),
	}, nil
}

// Nop never stores anything. It is used when Redis is not configured.
type Nop struct{}

func (Nop) Get(context.Context, uint) (profile.State, bool, error) { return profile.State{}, false, nil }
func (Nop) Set(context.Context, uint, profile.State) error         { return nil }
func (Nop) Delete(context.Context, uint) error                     { return nil }
