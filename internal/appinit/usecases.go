package appinit

import (
	"time"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/repository"
	"github.com/wekeepgrowing/semo-workspace/internal/usecase"
	"github.com/wekeepgrowing/semo-workspace/internal/usecase/interfaces"
)

// UseCases 애플리케이션의 모든 유스케이스 컨테이너
type UseCases struct {
	WorkspaceUseCase     interfaces.WorkspaceUseCase
	WorkspaceUserUseCase interfaces.WorkspaceUserUseCase
	AccessService        interfaces.WorkspaceAccessService
}

// NewUseCases 모든 유스케이스 인스턴스 생성 및 초기화
func NewUseCases(
	repos *repository.Repositories,
	templates usecase.InvitationTemplates,
	listCacheTTL time.Duration,
	logger *zap.Logger,
) *UseCases {
	useCases := &UseCases{}

	// 접근 확인 서비스 (다른 유스케이스가 의존)
	useCases.AccessService = usecase.NewWorkspaceAccessService(
		repos.Workspace,
		repos.WorkspaceUser,
		logger,
	)

	// 워크스페이스 유스케이스 초기화
	useCases.WorkspaceUseCase = usecase.NewWorkspaceUseCase(
		logger,
		repos,
		useCases.AccessService,
		listCacheTTL,
	)

	// 멤버 유스케이스 초기화
	useCases.WorkspaceUserUseCase = usecase.NewWorkspaceUserUseCase(
		logger,
		repos,
		useCases.AccessService,
		templates,
	)

	return useCases
}
