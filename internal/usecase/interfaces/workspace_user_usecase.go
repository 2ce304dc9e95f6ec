package interfaces

import (
	"context"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/entity"
	"github.com/wekeepgrowing/semo-workspace/internal/usecase/dto"
)

// WorkspaceUserUseCase 워크스페이스 멤버 관리 유스케이스 인터페이스
type WorkspaceUserUseCase interface {
	// ListWorkspaceUsers 워크스페이스 멤버 목록 (멤버만 조회 가능)
	ListWorkspaceUsers(ctx context.Context, userID, workspaceID string) ([]*entity.WorkspaceUser, error)

	// InviteUser 이메일로 사용자를 초대합니다. 기존 멤버면 역할을 교체합니다.
	InviteUser(ctx context.Context, params dto.InviteUserParams) (*entity.WorkspaceUser, error)
}
