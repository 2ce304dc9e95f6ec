package interfaces

import (
	"context"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/entity"
)

// WorkspaceAccessService 워크스페이스 접근 권한 확인 인터페이스
type WorkspaceAccessService interface {
	// RequireRole 사용자가 min 이상의 역할을 가진 멤버인지 확인하고 멤버십을 반환합니다.
	RequireRole(ctx context.Context, userID, workspaceID string, min entity.Role) (*entity.WorkspaceUser, error)
}
