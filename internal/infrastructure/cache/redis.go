package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Syeddabbas07/chest-ray/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logrus.Info("Successfully connected to Redis")

	return client, nil
}

type redisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func (s *redisSessionStore) Save(ctx context.Context, tokenID string, accountID uint, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(tokenID), strconv.FormatUint(uint64(accountID), 10), ttl).Err()
}

func (s *redisSessionStore) Lookup(ctx context.Context, tokenID string) (uint, bool, error) {
	raw, err := s.client.Get(ctx, sessionKey(tokenID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt session entry: %w", err)
	}
	return uint(id), true, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, tokenID string) error {
	return s.client.Del(ctx, sessionKey(tokenID)).Err()
}

func (s *redisSessionStore) Close() error {
	return s.client.Close()
}
