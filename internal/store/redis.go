package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "betsim:session:"

// Redis guarda cada chave como string sem expiração
type Redis struct{ R *redis.Client }

func NewRedis(r *redis.Client) *Redis { return &Redis{R: r} }

func redisKey(key string) string { return redisPrefix + key }

func (s *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.R.Get(ctx, redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *Redis) Set(ctx context.Context, key, value string) error {
	return s.R.Set(ctx, redisKey(key), value, 0).Err()
}

func (s *Redis) Remove(ctx context.Context, key string) error {
	return s.R.Del(ctx, redisKey(key)).Err()
}

func (s *Redis) Close() error { return s.R.Close() }
