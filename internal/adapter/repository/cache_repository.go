package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/repository"
	apperrors "github.com/wekeepgrowing/semo-workspace/pkg/errors"
)

// RedisCacheRepository Redis 캐시 저장소 구현체
type RedisCacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisCacheRepository Redis 캐시 저장소 생성
func NewRedisCacheRepository(client *redis.Client, logger *zap.Logger) repository.CacheRepository {
	return &RedisCacheRepository{client: client, logger: logger}
}

func (r *RedisCacheRepository) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if err := r.client.Set(ctx, key, value, expiration).Err(); err != nil {
		r.logger.Error("Redis Set 실패", zap.String("key", key), zap.Error(err))
		return apperrors.Wrap(err, "캐시 저장 실패")
	}
	return nil
}

func (r *RedisCacheRepository) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Error("Redis Get 실패", zap.String("key", key), zap.Error(err))
		}
		return "", apperrors.Wrap(err, "캐시 조회 실패")
	}
	return value, nil
}

// Delete 단일 키 삭제
func (r *RedisCacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Redis Delete 실패", zap.String("key", key), zap.Error(err))
		return apperrors.Wrap(err, "캐시 삭제 실패")
	}
	return nil
}

// DeleteMulti 여러 키를 한 번에 삭제
func (r *RedisCacheRepository) DeleteMulti(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Error("Redis DeleteMulti 실패", zap.Strings("keys", keys), zap.Error(err))
		return apperrors.Wrap(err, "캐시 삭제 실패")
	}
	return nil
}

// IsNotFound 키가 존재하지 않는 에러인지 확인
func (r *RedisCacheRepository) IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
