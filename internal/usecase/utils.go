package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID 요청 ID를 컨텍스트에 저장합니다. 유스케이스 로그에 함께 기록됩니다.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// requestIDFrom 컨텍스트의 요청 ID. 없으면 prefix 기반 임시 ID를 만듭니다.
func requestIDFrom(ctx context.Context, prefix string) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		return id
	}
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
