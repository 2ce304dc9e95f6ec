package repository

import (
	"go.uber.org/zap"

	domainrepo "github.com/wekeepgrowing/semo-workspace/internal/domain/repository"
	"github.com/wekeepgrowing/semo-workspace/internal/infrastructure/db"
)

// InitRepositories 모든 레포지토리를 초기화하고 컬렉션을 반환합니다
func InitRepositories(infra *db.Infrastructure, eventChannel string, logger *zap.Logger) *domainrepo.Repositories {
	repos := &domainrepo.Repositories{
		Workspace:     NewWorkspaceRepository(infra.DB),
		WorkspaceUser: NewWorkspaceUserRepository(infra.DB),
		User:          NewUserRepository(infra.DB),
		Cache:         NewRedisCacheRepository(infra.RedisClient, logger),
		Events:        NewBrokerEventPublisher(infra.Broker, eventChannel),
		Mail:          NewMailRepository(infra.SMTPClient, logger),
	}

	// nil *authzed.Client가 non-nil 인터페이스로 넘어가지 않게 분기
	if infra.SpiceDB != nil {
		repos.Relationship = NewSpiceDBRelationshipRepository(infra.SpiceDB)
	} else {
		repos.Relationship = NewSpiceDBRelationshipRepository(nil)
	}

	return repos
}
