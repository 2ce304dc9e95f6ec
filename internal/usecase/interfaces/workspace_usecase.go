package interfaces

import (
	"context"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/entity"
	"github.com/wekeepgrowing/semo-workspace/internal/usecase/dto"
)

// WorkspaceUseCase 워크스페이스 관리 유스케이스 인터페이스
type WorkspaceUseCase interface {
	// ListWorkspaces 사용자가 속한 워크스페이스 목록 (생성 시각 오름차순)
	ListWorkspaces(ctx context.Context, userID string) ([]*entity.Workspace, error)

	// GetWorkspace 멤버만 조회 가능
	GetWorkspace(ctx context.Context, userID, workspaceID string) (*entity.Workspace, error)

	// CreateWorkspace 워크스페이스 생성. 생성자는 owner가 됩니다.
	CreateWorkspace(ctx context.Context, params dto.CreateWorkspaceParams) (*entity.Workspace, error)

	// UpdateWorkspace 이름과 설명 수정 (owner, admin)
	UpdateWorkspace(ctx context.Context, params dto.UpdateWorkspaceParams) (*entity.Workspace, error)

	// DeleteWorkspace 워크스페이스 삭제 (owner)
	DeleteWorkspace(ctx context.Context, userID, workspaceID string) error
}
