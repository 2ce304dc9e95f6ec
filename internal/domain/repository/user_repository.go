package repository

import (
	"context"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/entity"
)

// UserRepository 사용자 조회 인터페이스 (users 테이블은 인증 서비스 소유)
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
