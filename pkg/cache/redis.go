package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisDialTimeout  = 3 * time.Second
	redisReadTimeout  = 2 * time.Second
	redisWriteTimeout = 2 * time.Second
	redisPingTimeout  = 2 * time.Second

	redisPrefix = "pokeguide:memo:"
	redisTagSet = "pokeguide:tag:"
)

// NewRedisClient parses a Redis URL and pings the server before returning.
func NewRedisClient(ctx context.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid url: %w", err)
	}
	options.DialTimeout = redisDialTimeout
	options.ReadTimeout = redisReadTimeout
	options.WriteTimeout = redisWriteTimeout

	client := redis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}

	logger.Info("redis client connected", slog.String("addr", options.Addr))
	return client, nil
}

// RedisMemo shares the server tier between processes. Tags are kept as
// Redis sets of member keys; expiry is left to Redis.
type RedisMemo struct {
	client redis.UniversalClient
}

func NewRedisMemo(client redis.UniversalClient) *RedisMemo {
	return &RedisMemo{client: client}
}

func (m *RedisMemo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := m.client.Get(ctx, redisPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis memo get failed: %w", err)
	}
	return value, true, nil
}

func (m *RedisMemo) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags []string) error {
	_, err := m.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisPrefix+key, value, ttl)
		for _, tag := range tags {
			pipe.SAdd(ctx, redisTagSet+tag, key)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis memo set failed: %w", err)
	}
	return nil
}

func (m *RedisMemo) InvalidateTags(ctx context.Context, tags []string) (int, error) {
	n := 0
	for _, tag := range tags {
		keys, err := m.client.SMembers(ctx, redisTagSet+tag).Result()
		if err != nil {
			return n, fmt.Errorf("redis memo tag lookup failed: %w", err)
		}

		full := make([]string, 0, len(keys)+1)
		for _, k := range keys {
			full = append(full, redisPrefix+k)
		}
		full = append(full, redisTagSet+tag)

		deleted, err := m.client.Del(ctx, full...).Result()
		if err != nil {
			return n, fmt.Errorf("redis memo invalidate failed: %w", err)
		}
		// the tag set itself is not an entry
		n += max(int(deleted)-1, 0)
	}
	return n, nil
}

// Sweep prunes tag sets of members Redis has already expired.
func (m *RedisMemo) Sweep(ctx context.Context) (int, error) {
	var cursor uint64
	pruned := 0
	for {
		sets, next, err := m.client.Scan(ctx, cursor, redisTagSet+"*", 100).Result()
		if err != nil {
			return pruned, fmt.Errorf("redis memo sweep failed: %w", err)
		}
		for _, set := range sets {
			keys, err := m.client.SMembers(ctx, set).Result()
			if err != nil {
				return pruned, fmt.Errorf("redis memo sweep failed: %w", err)
			}
			for _, k := range keys {
				exists, err := m.client.Exists(ctx, redisPrefix+k).Result()
				if err != nil {
					return pruned, fmt.Errorf("redis memo sweep failed: %w", err)
				}
				if exists == 0 {
					m.client.SRem(ctx, set, k)
					pruned++
				}
			}
		}
		cursor = next
		if cursor == 0 {
			return pruned, nil
		}
	}
}
