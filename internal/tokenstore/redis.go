// Package tokenstore persists confirmation-token mappings in Redis.
//
// One mapping per issued token: subscription_token:{token}:subscriber_id →
// the subscriber's UUID. Redis exclusively owns these mappings; the
// relational store knows nothing about tokens.
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/newsletter-service/internal/pkg/logger"
	"github.com/ignite/newsletter-service/internal/service/subscription"
)

// RedisStore implements subscription.TokenStore on a Redis client.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a token store. ttl bounds how long a token can be
// confirmed; a zero ttl keeps tokens forever.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func tokenKey(token string) string {
	return fmt.Sprintf("subscription_token:%s:subscriber_id", token)
}

// Store records token → subscriberID with the configured TTL.
func (s *RedisStore) Store(ctx context.Context, token string, subscriberID uuid.UUID) error {
	if err := s.client.Set(ctx, tokenKey(token), subscriberID.String(), s.ttl).Err(); err != nil {
		return fmt.Errorf("set token mapping: %w", err)
	}
	return nil
}

// Lookup resolves a token to its subscriber id. Unknown and expired tokens
// return subscription.ErrTokenNotFound; so does a mapping whose value is not
// a UUID, which is logged since it means the store was corrupted.
func (s *RedisStore) Lookup(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := s.client.Get(ctx, tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, subscription.ErrTokenNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("get token mapping: %w", err)
	}

	id, err := uuid.Parse(val)
	if err != nil {
		logger.Warn("token mapping holds a non-UUID value", "value", val, "error", err)
		return uuid.Nil, subscription.ErrTokenNotFound
	}
	return id, nil
}
