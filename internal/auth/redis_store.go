package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisStore keeps admin sessions in Redis so they survive process restarts.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Create(token string, ttl time.Duration) error {
	return s.client.Set(context.Background(), sessionKeyPrefix+token, "1", ttl).Err()
}

func (s *RedisStore) Valid(token string) bool {
	n, err := s.client.Exists(context.Background(), sessionKeyPrefix+token).Result()
	return err == nil && n > 0
}

func (s *RedisStore) Revoke(token string) error {
	return s.client.Del(context.Background(), sessionKeyPrefix+token).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
