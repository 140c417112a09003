package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const redisOpTimeout = 3 * time.Second

// RedisStore maps each slot to a field of one hash key, for setups
// where the client state should survive outside the local filesystem
// (shared kiosk terminals).
type RedisStore struct {
	client *redis.Client
	key    string
	log    zerolog.Logger
}

func NewRedis(cfg Config, log zerolog.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "asali"
	}

	return &RedisStore{
		client: client,
		key:    namespace + ":state",
		log:    log,
	}, nil
}

func (s *RedisStore) Read(slot string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	value, err := s.client.HGet(ctx, s.key, slot).Result()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn().Err(err).Str("slot", slot).Msg("redis read failed, treating as absent")
		}
		return "", false
	}
	return value, true
}

func (s *RedisStore) Write(slot string, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := s.client.HSet(ctx, s.key, slot, value).Err(); err != nil {
		return fmt.Errorf("redis write %s: %w", slot, err)
	}
	return nil
}

func (s *RedisStore) Erase(slot string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := s.client.HDel(ctx, s.key, slot).Err(); err != nil {
		return fmt.Errorf("redis erase %s: %w", slot, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
