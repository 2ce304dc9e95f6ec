package repository

import (
	"context"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/entity"
)

// EventPublisher 워크스페이스 도메인 이벤트 발행 인터페이스
type EventPublisher interface {
	Publish(ctx context.Context, event *entity.WorkspaceEvent) error
}
