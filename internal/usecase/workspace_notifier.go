package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/entity"
	"github.com/wekeepgrowing/semo-workspace/internal/domain/repository"
	"github.com/wekeepgrowing/semo-workspace/internal/usecase/constants"
)

// workspaceNotifier 변경 후 부수 작업(캐시 무효화, 이벤트 발행, 권한 관계 반영).
// 실패는 로그만 남기고 요청 결과에는 영향을 주지 않습니다.
type workspaceNotifier struct {
	cache        repository.CacheRepository
	events       repository.EventPublisher
	relationship repository.RelationshipRepository
	logger       *zap.Logger
}

func (n *workspaceNotifier) invalidateLists(ctx context.Context, userIDs ...string) {
	if len(userIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, constants.WorkspaceListKey(id))
	}
	if err := n.cache.DeleteMulti(ctx, keys); err != nil {
		n.logger.Warn("워크스페이스 목록 캐시 무효화 실패",
			zap.Strings("user_ids", userIDs),
			zap.Error(err))
	}
}

func (n *workspaceNotifier) publish(ctx context.Context, event *entity.WorkspaceEvent) {
	if err := n.events.Publish(ctx, event); err != nil {
		n.logger.Warn("워크스페이스 이벤트 발행 실패",
			zap.String("event_type", string(event.Type)),
			zap.String("workspace_id", event.WorkspaceID),
			zap.Error(err))
	}
}

func (n *workspaceNotifier) touchMember(ctx context.Context, member *entity.WorkspaceUser) {
	if err := n.relationship.TouchMember(ctx, member.WorkspaceID, member.UserID, member.Role); err != nil {
		n.logger.Warn("권한 관계 기록 실패",
			zap.String("workspace_id", member.WorkspaceID),
			zap.String("user_id", member.UserID),
			zap.String("role", member.Role.String()),
			zap.Error(err))
	}
}

func (n *workspaceNotifier) deleteRelationships(ctx context.Context, workspaceID string) {
	if err := n.relationship.DeleteWorkspace(ctx, workspaceID); err != nil {
		n.logger.Warn("권한 관계 삭제 실패",
			zap.String("workspace_id", workspaceID),
			zap.Error(err))
	}
}
