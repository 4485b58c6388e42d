package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrTokenStoreUnavailable = errors.New("reset token store unavailable")

// ResetTokenStore 密码重置令牌的能力接口：签发和一次性消费
type ResetTokenStore interface {
	Issue(ctx context.Context, userID uint, ttl time.Duration) (string, error)
	Consume(ctx context.Context, token string) (uint, bool)
}

// RedisTokenStore 把重置令牌放进 Redis 并带过期时间
type RedisTokenStore struct {
	Redis  *redis.Client
	Prefix string
}

func NewRedisTokenStore(rdb *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{Redis: rdb, Prefix: "pwreset:"}
}

func (s *RedisTokenStore) Issue(ctx context.Context, userID uint, ttl time.Duration) (string, error) {
	if s.Redis == nil {
		return "", ErrTokenStoreUnavailable
	}

	token := uuid.New().String()
	if err := s.Redis.Set(ctx, s.Prefix+token, userID, ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Consume 取出并删除令牌，保证一个令牌只能用一次
func (s *RedisTokenStore) Consume(ctx context.Context, token string) (uint, bool) {
	if s.Redis == nil || token == "" {
		return 0, false
	}

	key := s.Prefix + token
	val, err := s.Redis.Get(ctx, key).Uint64()
	if err != nil {
		return 0, false
	}

	s.Redis.Del(ctx, key)
	return uint(val), true
}
