package recent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "recent:"

// RedisRepository implements Repository on Redis. The whole list is stored
// as one JSON value per shopper; at five entries a read-modify-write beats
// juggling list commands, and the TTL ages out dormant shoppers.
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRepository creates a Redis-backed store.
func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{client: client, ttl: ttl}
}

// Touch records a product view.
func (r *RedisRepository) Touch(ctx context.Context, shopperID string, entry Entry) error {
	entries, err := r.load(ctx, shopperID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(push(entries, entry))
	if err != nil {
		return fmt.Errorf("marshal recent list: %w", err)
	}

	if err := r.client.Set(ctx, keyPrefix+shopperID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set recent list: %w", err)
	}
	return nil
}

// List returns the shopper's list, most recent first.
func (r *RedisRepository) List(ctx context.Context, shopperID string) ([]Entry, error) {
	return r.load(ctx, shopperID)
}

func (r *RedisRepository) load(ctx context.Context, shopperID string) ([]Entry, error) {
	data, err := r.client.Get(ctx, keyPrefix+shopperID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("redis get recent list: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal recent list: %w", err)
	}
	return entries, nil
}
