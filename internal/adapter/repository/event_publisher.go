package repository

import (
	"context"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/entity"
	"github.com/wekeepgrowing/semo-workspace/internal/domain/repository"
	"github.com/wekeepgrowing/semo-workspace/pkg/messaging"
)

// BrokerEventPublisher 워크스페이스 이벤트를 메시지 브로커 채널로 발행
type BrokerEventPublisher struct {
	broker  messaging.Broker
	channel string
}

// NewBrokerEventPublisher 이벤트 발행기 생성
func NewBrokerEventPublisher(broker messaging.Broker, channel string) repository.EventPublisher {
	return &BrokerEventPublisher{broker: broker, channel: channel}
}

func (p *BrokerEventPublisher) Publish(ctx context.Context, event *entity.WorkspaceEvent) error {
	return p.broker.Publish(ctx, p.channel, string(event.Type), event)
}
