package repository

import (
	"context"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/entity"
)

// WorkspaceUserRepository 멤버십 저장소 인터페이스
type WorkspaceUserRepository interface {
	// Find 멤버십 조회. 없으면 nil, nil
	Find(ctx context.Context, workspaceID, userID string) (*entity.WorkspaceUser, error)

	// FindByWorkspaceID 워크스페이스의 멤버를 가입 시각 오름차순으로 조회
	FindByWorkspaceID(ctx context.Context, workspaceID string) ([]*entity.WorkspaceUser, error)

	// Create 새 멤버십 생성
	Create(ctx context.Context, member *entity.WorkspaceUser) error

	// UpdateRole 기존 멤버의 역할 변경
	UpdateRole(ctx context.Context, workspaceID, userID string, role entity.Role) error
}
