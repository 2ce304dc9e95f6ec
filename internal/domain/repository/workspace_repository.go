package repository

import (
	"context"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/entity"
)

// WorkspaceRepository 워크스페이스 저장소 인터페이스
type WorkspaceRepository interface {
	// FindByID ID로 워크스페이스 조회. 없으면 nil, nil
	FindByID(ctx context.Context, id string) (*entity.Workspace, error)

	// FindByUserID 사용자가 속한 워크스페이스를 생성 시각 오름차순으로 조회
	FindByUserID(ctx context.Context, userID string) ([]*entity.Workspace, error)

	// CreateWithOwner 워크스페이스와 소유자 멤버십을 하나의 트랜잭션으로 생성
	CreateWithOwner(ctx context.Context, workspace *entity.Workspace, owner *entity.WorkspaceUser) error

	// Update 이름과 설명 갱신
	Update(ctx context.Context, workspace *entity.Workspace) error

	// Delete 워크스페이스와 모든 멤버십을 하나의 트랜잭션으로 삭제
	Delete(ctx context.Context, id string) error
}
