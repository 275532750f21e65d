package flash

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps flash queues in Redis lists so every replica sees the
// same messages.
//
// Key layout: flash:<session>:<key>, one list per message key, expiring
// ttl after the last write.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a store on client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(sessionID, key string) string {
	return fmt.Sprintf("flash:%s:%s", sessionID, key)
}

// Add appends value and refreshes the expiry in one round trip.
func (r *RedisStore) Add(ctx context.Context, sessionID, key, value string) error {
	k := redisKey(sessionID, key)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, k, value)
		if r.ttl > 0 {
			pipe.Expire(ctx, k, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("pushing flash %s: %w", key, err)
	}
	return nil
}

// Consume reads and deletes the list inside MULTI so two concurrent
// requests of the same session cannot both see a message.
func (r *RedisStore) Consume(ctx context.Context, sessionID, key string) ([]string, error) {
	k := redisKey(sessionID, key)

	var values *redis.StringSliceCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		values = pipe.LRange(ctx, k, 0, -1)
		pipe.Del(ctx, k)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("consuming flash %s: %w", key, err)
	}

	result := values.Val()
	if len(result) == 0 {
		return nil, nil
	}
	return result, nil
}
