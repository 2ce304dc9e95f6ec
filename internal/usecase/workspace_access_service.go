package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-workspace/internal/domain/errors"
	"github.com/wekeepgrowing/semo-workspace/internal/domain/repository"
	"github.com/wekeepgrowing/semo-workspace/internal/usecase/interfaces"
)

// WorkspaceAccessService 멤버십과 역할로 워크스페이스 접근을 확인
type WorkspaceAccessService struct {
	workspaceRepo repository.WorkspaceRepository
	memberRepo    repository.WorkspaceUserRepository
	logger        *zap.Logger
}

// NewWorkspaceAccessService 접근 확인 서비스 생성
func NewWorkspaceAccessService(
	workspaceRepo repository.WorkspaceRepository,
	memberRepo repository.WorkspaceUserRepository,
	logger *zap.Logger,
) interfaces.WorkspaceAccessService {
	return &WorkspaceAccessService{
		workspaceRepo: workspaceRepo,
		memberRepo:    memberRepo,
		logger:        logger,
	}
}

// RequireRole 멤버가 아니면 워크스페이스 존재 여부에 따라 NOT_FOUND 또는 USER_NOT_MEMBER,
// 역할이 부족하면 INSUFFICIENT_PERMISSIONS를 반환합니다.
func (s *WorkspaceAccessService) RequireRole(
	ctx context.Context,
	userID,
	workspaceID string,
	min entity.Role,
) (*entity.WorkspaceUser, error) {
	startTime := time.Now()
	requestID := requestIDFrom(ctx, "wac")

	member, err := s.memberRepo.Find(ctx, workspaceID, userID)
	if err != nil {
		s.logger.Error("멤버십 조회 실패",
			zap.String("request_id", requestID),
			zap.String("user_id", userID),
			zap.String("workspace_id", workspaceID),
			zap.Error(err))
		return nil, domainErrors.NewStorageError(userID, workspaceID, err)
	}

	if member == nil {
		workspace, err := s.workspaceRepo.FindByID(ctx, workspaceID)
		if err != nil {
			return nil, domainErrors.NewStorageError(userID, workspaceID, err)
		}
		if workspace == nil {
			s.logger.Debug("존재하지 않는 워크스페이스 접근",
				zap.String("request_id", requestID),
				zap.String("user_id", userID),
				zap.String("workspace_id", workspaceID))
			return nil, domainErrors.NewWorkspaceNotFoundError(userID, workspaceID)
		}

		s.logger.Warn("멤버가 아닌 사용자의 워크스페이스 접근",
			zap.String("request_id", requestID),
			zap.String("user_id", userID),
			zap.String("workspace_id", workspaceID))
		return nil, domainErrors.NewUserNotMemberError(userID, workspaceID)
	}

	if !member.Role.AtLeast(min) {
		s.logger.Warn("워크스페이스 권한 부족",
			zap.String("request_id", requestID),
			zap.String("user_id", userID),
			zap.String("workspace_id", workspaceID),
			zap.String("member_role", member.Role.String()),
			zap.String("required_role", min.String()))
		return nil, domainErrors.NewInsufficientPermissionsError(userID, workspaceID)
	}

	s.logger.Debug("워크스페이스 접근 확인 완료",
		zap.String("request_id", requestID),
		zap.String("user_id", userID),
		zap.String("workspace_id", workspaceID),
		zap.String("member_role", member.Role.String()),
		zap.Duration("duration", time.Since(startTime)))

	return member, nil
}
