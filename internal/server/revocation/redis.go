package revocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "familyaccount:revoked:"
	cutoffPrefix = "familyaccount:revoked-before:"
)

type redisClient interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// RedisStore keeps revoked IDs as keys with a TTL, so Redis expires them.
type RedisStore struct {
	client redisClient
	now    func() time.Time
}

// NewRedisStore connects to addr and fails if the server does not answer
// PING.
func NewRedisStore(ctx context.Context, addr, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisStore{client: client, now: time.Now}, nil
}

func (s *RedisStore) Revoke(ctx context.Context, id string, expires time.Time) error {
	ttl := expires.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, keyPrefix+id, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) IsRevoked(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// RevokeUser stores the cutoff in nanoseconds. A later call replaces it;
// cutoffs only move forward in practice since they are taken from the clock.
func (s *RedisStore) RevokeUser(ctx context.Context, userID string, before, expires time.Time) error {
	ttl := expires.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, cutoffPrefix+userID, before.UnixNano(), ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) RevokedBefore(ctx context.Context, userID string) (time.Time, error) {
	ns, err := s.client.Get(ctx, cutoffPrefix+userID).Int64()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("redis get: %w", err)
	}
	return time.Unix(0, ns), nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
