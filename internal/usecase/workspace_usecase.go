package usecase

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-workspace/internal/domain/errors"
	"github.com/wekeepgrowing/semo-workspace/internal/domain/repository"
	"github.com/wekeepgrowing/semo-workspace/internal/usecase/constants"
	"github.com/wekeepgrowing/semo-workspace/internal/usecase/dto"
	"github.com/wekeepgrowing/semo-workspace/internal/usecase/interfaces"
)

// WorkspaceUseCase 워크스페이스 생성, 조회, 수정, 삭제 유스케이스 구현체
type WorkspaceUseCase struct {
	logger        *zap.Logger
	workspaceRepo repository.WorkspaceRepository
	memberRepo    repository.WorkspaceUserRepository
	access        interfaces.WorkspaceAccessService
	notifier      *workspaceNotifier
	cacheTTL      time.Duration
	now           func() time.Time
}

// NewWorkspaceUseCase 새 워크스페이스 유스케이스 생성
func NewWorkspaceUseCase(
	logger *zap.Logger,
	repositories *repository.Repositories,
	access interfaces.WorkspaceAccessService,
	cacheTTL time.Duration,
) interfaces.WorkspaceUseCase {
	if cacheTTL <= 0 {
		cacheTTL = constants.DefaultWorkspaceListExpiry
	}
	return &WorkspaceUseCase{
		logger:        logger,
		workspaceRepo: repositories.Workspace,
		memberRepo:    repositories.WorkspaceUser,
		access:        access,
		notifier: &workspaceNotifier{
			cache:        repositories.Cache,
			events:       repositories.Events,
			relationship: repositories.Relationship,
			logger:       logger,
		},
		cacheTTL: cacheTTL,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ListWorkspaces 캐시를 먼저 확인하고 없으면 DB에서 조회해 캐시에 저장
func (uc *WorkspaceUseCase) ListWorkspaces(ctx context.Context, userID string) ([]*entity.Workspace, error) {
	key := constants.WorkspaceListKey(userID)

	cached, err := uc.notifier.cache.Get(ctx, key)
	switch {
	case err == nil:
		workspaces, decodeErr := decodeWorkspaceList(cached)
		if decodeErr == nil {
			return workspaces, nil
		}
		uc.logger.Warn("워크스페이스 목록 캐시 역직렬화 실패", zap.String("user_id", userID), zap.Error(decodeErr))
		if err := uc.notifier.cache.Delete(ctx, key); err != nil {
			uc.logger.Warn("손상된 워크스페이스 목록 캐시 삭제 실패", zap.String("user_id", userID), zap.Error(err))
		}
	case !uc.notifier.cache.IsNotFound(err):
		uc.logger.Warn("워크스페이스 목록 캐시 조회 실패", zap.String("user_id", userID), zap.Error(err))
	}

	workspaces, err := uc.workspaceRepo.FindByUserID(ctx, userID)
	if err != nil {
		uc.logger.Error("워크스페이스 목록 조회 실패", zap.String("user_id", userID), zap.Error(err))
		return nil, domainErrors.NewStorageError(userID, "", err)
	}

	if encoded, err := encodeWorkspaceList(workspaces); err == nil {
		if err := uc.notifier.cache.Set(ctx, key, encoded, uc.cacheTTL); err != nil {
			uc.logger.Warn("워크스페이스 목록 캐시 저장 실패", zap.String("user_id", userID), zap.Error(err))
		}
	}

	return workspaces, nil
}

// GetWorkspace 워크스페이스 단건 조회
func (uc *WorkspaceUseCase) GetWorkspace(ctx context.Context, userID, workspaceID string) (*entity.Workspace, error) {
	if _, err := uc.access.RequireRole(ctx, userID, workspaceID, entity.RoleMember); err != nil {
		return nil, err
	}

	workspace, err := uc.workspaceRepo.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, domainErrors.NewStorageError(userID, workspaceID, err)
	}
	if workspace == nil {
		return nil, domainErrors.NewWorkspaceNotFoundError(userID, workspaceID)
	}
	return workspace, nil
}

// CreateWorkspace 워크스페이스와 owner 멤버십 생성
func (uc *WorkspaceUseCase) CreateWorkspace(ctx context.Context, params dto.CreateWorkspaceParams) (*entity.Workspace, error) {
	requestID := requestIDFrom(ctx, "wsc")
	now := uc.now()

	// 1. 엔티티 생성 및 검증
	workspace, err := entity.NewWorkspace(params.Name, params.Description, now)
	if err != nil {
		return nil, domainErrors.NewInvalidWorkspaceError(params.UserID, "", err)
	}

	owner, err := entity.NewWorkspaceUser(workspace.ID, params.UserID, entity.RoleOwner, now)
	if err != nil {
		return nil, domainErrors.NewInvalidWorkspaceError(params.UserID, workspace.ID, err)
	}

	// 2. 워크스페이스와 owner 멤버십 저장
	if err := uc.workspaceRepo.CreateWithOwner(ctx, workspace, owner); err != nil {
		uc.logger.Error("워크스페이스 생성 실패",
			zap.String("request_id", requestID),
			zap.String("user_id", params.UserID),
			zap.Error(err))
		return nil, domainErrors.NewStorageError(params.UserID, workspace.ID, err)
	}

	// 3. 부수 작업
	uc.notifier.invalidateLists(ctx, params.UserID)
	uc.notifier.touchMember(ctx, owner)
	uc.notifier.publish(ctx, &entity.WorkspaceEvent{
		Type:        entity.EventWorkspaceCreated,
		WorkspaceID: workspace.ID,
		ActorID:     params.UserID,
		Role:        entity.RoleOwner,
		OccurredAt:  now,
	})

	uc.logger.Info("워크스페이스 생성 완료",
		zap.String("request_id", requestID),
		zap.String("user_id", params.UserID),
		zap.String("workspace_id", workspace.ID))

	return workspace, nil
}

// UpdateWorkspace 이름과 설명 교체. ID와 생성 시각은 유지됩니다.
func (uc *WorkspaceUseCase) UpdateWorkspace(ctx context.Context, params dto.UpdateWorkspaceParams) (*entity.Workspace, error) {
	requestID := requestIDFrom(ctx, "wsu")

	if _, err := uc.access.RequireRole(ctx, params.UserID, params.WorkspaceID, entity.RoleAdmin); err != nil {
		return nil, err
	}

	workspace, err := uc.workspaceRepo.FindByID(ctx, params.WorkspaceID)
	if err != nil {
		return nil, domainErrors.NewStorageError(params.UserID, params.WorkspaceID, err)
	}
	if workspace == nil {
		return nil, domainErrors.NewWorkspaceNotFoundError(params.UserID, params.WorkspaceID)
	}

	now := uc.now()
	if err := workspace.Update(params.Name, params.Description, now); err != nil {
		return nil, domainErrors.NewInvalidWorkspaceError(params.UserID, params.WorkspaceID, err)
	}

	if err := uc.workspaceRepo.Update(ctx, workspace); err != nil {
		if isRecordNotFound(err) {
			return nil, domainErrors.NewWorkspaceNotFoundError(params.UserID, params.WorkspaceID)
		}
		uc.logger.Error("워크스페이스 수정 실패",
			zap.String("request_id", requestID),
			zap.String("workspace_id", params.WorkspaceID),
			zap.Error(err))
		return nil, domainErrors.NewStorageError(params.UserID, params.WorkspaceID, err)
	}

	uc.notifier.invalidateLists(ctx, uc.memberIDs(ctx, params.WorkspaceID)...)
	uc.notifier.publish(ctx, &entity.WorkspaceEvent{
		Type:        entity.EventWorkspaceUpdated,
		WorkspaceID: workspace.ID,
		ActorID:     params.UserID,
		OccurredAt:  now,
	})

	uc.logger.Info("워크스페이스 수정 완료",
		zap.String("request_id", requestID),
		zap.String("user_id", params.UserID),
		zap.String("workspace_id", workspace.ID))

	return workspace, nil
}

// DeleteWorkspace 워크스페이스와 모든 멤버십 삭제 (owner만 가능)
func (uc *WorkspaceUseCase) DeleteWorkspace(ctx context.Context, userID, workspaceID string) error {
	requestID := requestIDFrom(ctx, "wsd")

	if _, err := uc.access.RequireRole(ctx, userID, workspaceID, entity.RoleOwner); err != nil {
		return err
	}

	// 삭제 후에는 멤버 목록을 알 수 없으므로 먼저 조회
	memberIDs := uc.memberIDs(ctx, workspaceID)

	if err := uc.workspaceRepo.Delete(ctx, workspaceID); err != nil {
		if isRecordNotFound(err) {
			return domainErrors.NewWorkspaceNotFoundError(userID, workspaceID)
		}
		uc.logger.Error("워크스페이스 삭제 실패",
			zap.String("request_id", requestID),
			zap.String("workspace_id", workspaceID),
			zap.Error(err))
		return domainErrors.NewStorageError(userID, workspaceID, err)
	}

	uc.notifier.invalidateLists(ctx, memberIDs...)
	uc.notifier.deleteRelationships(ctx, workspaceID)
	uc.notifier.publish(ctx, &entity.WorkspaceEvent{
		Type:        entity.EventWorkspaceDeleted,
		WorkspaceID: workspaceID,
		ActorID:     userID,
		OccurredAt:  uc.now(),
	})

	uc.logger.Info("워크스페이스 삭제 완료",
		zap.String("request_id", requestID),
		zap.String("user_id", userID),
		zap.String("workspace_id", workspaceID),
		zap.Int("member_count", len(memberIDs)))

	return nil
}

func (uc *WorkspaceUseCase) memberIDs(ctx context.Context, workspaceID string) []string {
	members, err := uc.memberRepo.FindByWorkspaceID(ctx, workspaceID)
	if err != nil {
		uc.logger.Warn("멤버 목록 조회 실패", zap.String("workspace_id", workspaceID), zap.Error(err))
		return nil
	}
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	return ids
}

func encodeWorkspaceList(workspaces []*entity.Workspace) (string, error) {
	cached := make([]dto.CachedWorkspace, 0, len(workspaces))
	for _, w := range workspaces {
		cached = append(cached, dto.CachedWorkspace{
			ID:          w.ID,
			Name:        w.Name,
			Description: w.Description,
			CreatedAt:   w.CreatedAt,
			UpdatedAt:   w.UpdatedAt,
		})
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeWorkspaceList(raw string) ([]*entity.Workspace, error) {
	var cached []dto.CachedWorkspace
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, err
	}
	workspaces := make([]*entity.Workspace, 0, len(cached))
	for _, c := range cached {
		workspaces = append(workspaces, &entity.Workspace{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			CreatedAt:   c.CreatedAt,
			UpdatedAt:   c.UpdatedAt,
		})
	}
	return workspaces, nil
}
