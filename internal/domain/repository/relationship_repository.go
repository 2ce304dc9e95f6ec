package repository

import (
	"context"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/entity"
)

// RelationshipRepository 외부 권한 시스템에 멤버십 관계를 기록하는 인터페이스
type RelationshipRepository interface {
	// TouchMember workspace#role@user 관계를 생성하거나 갱신합니다. 다른 역할 관계는 제거합니다.
	TouchMember(ctx context.Context, workspaceID, userID string, role entity.Role) error

	// DeleteWorkspace 워크스페이스의 모든 관계를 제거합니다.
	DeleteWorkspace(ctx context.Context, workspaceID string) error
}
