package repository

import (
	"context"
	"time"
)

// CacheRepository는 캐시 저장소 접근을 위한 인터페이스입니다.
type CacheRepository interface {
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Get 키가 없으면 IsNotFound(err)가 true인 에러를 반환합니다.
	Get(ctx context.Context, key string) (string, error)

	Delete(ctx context.Context, key string) error

	DeleteMulti(ctx context.Context, keys []string) error

	IsNotFound(err error) bool
}
