package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/thelegendaryarticuno/myfashion/pkg/errors"
)

const sessionKeyPrefix = "otp:session:"

// RedisRepository implements Repository on Redis. Sessions carry a TTL so
// abandoned attempts clean themselves up.
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRepository creates a Redis-backed session store.
func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{client: client, ttl: ttl}
}

// Get retrieves the session for an email from Redis.
func (r *RedisRepository) Get(ctx context.Context, email string) (*Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+email).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("otp session", email)
		}
		return nil, fmt.Errorf("redis get otp session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal otp session: %w", err)
	}
	return &sess, nil
}

// Save persists a session to Redis, refreshing its TTL.
func (r *RedisRepository) Save(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal otp session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKeyPrefix+sess.Email, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set otp session: %w", err)
	}
	return nil
}

// Delete removes the session for an email from Redis.
func (r *RedisRepository) Delete(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+email).Err(); err != nil {
		return fmt.Errorf("redis del otp session: %w", err)
	}
	return nil
}
