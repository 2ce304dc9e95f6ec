package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-workspace/internal/domain/errors"
	"github.com/wekeepgrowing/semo-workspace/internal/domain/repository"
	"github.com/wekeepgrowing/semo-workspace/internal/usecase/dto"
	"github.com/wekeepgrowing/semo-workspace/internal/usecase/interfaces"
)

var errInvalidEmail = errors.New("올바른 이메일 주소가 아닙니다")

// InvitationTemplates 초대 메일 제목과 본문 생성
type InvitationTemplates interface {
	InvitationSubject(workspaceName string) string
	GenerateInvitationEmailHTML(inviteeName, inviterName, workspaceName, workspaceID, role string) string
}

// WorkspaceUserUseCase 워크스페이스 멤버 조회 및 초대 유스케이스 구현체
type WorkspaceUserUseCase struct {
	logger        *zap.Logger
	workspaceRepo repository.WorkspaceRepository
	memberRepo    repository.WorkspaceUserRepository
	userRepo      repository.UserRepository
	mailRepo      repository.MailRepository
	templates     InvitationTemplates
	access        interfaces.WorkspaceAccessService
	notifier      *workspaceNotifier
	validate      *validator.Validate
	now           func() time.Time
}

// NewWorkspaceUserUseCase 새 멤버 유스케이스 생성
func NewWorkspaceUserUseCase(
	logger *zap.Logger,
	repositories *repository.Repositories,
	access interfaces.WorkspaceAccessService,
	templates InvitationTemplates,
) interfaces.WorkspaceUserUseCase {
	return &WorkspaceUserUseCase{
		logger:        logger,
		workspaceRepo: repositories.Workspace,
		memberRepo:    repositories.WorkspaceUser,
		userRepo:      repositories.User,
		mailRepo:      repositories.Mail,
		templates:     templates,
		access:        access,
		notifier: &workspaceNotifier{
			cache:        repositories.Cache,
			events:       repositories.Events,
			relationship: repositories.Relationship,
			logger:       logger,
		},
		validate: validator.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ListWorkspaceUsers 멤버 목록 조회 (가입 시각 오름차순)
func (uc *WorkspaceUserUseCase) ListWorkspaceUsers(ctx context.Context, userID, workspaceID string) ([]*entity.WorkspaceUser, error) {
	if _, err := uc.access.RequireRole(ctx, userID, workspaceID, entity.RoleMember); err != nil {
		return nil, err
	}

	members, err := uc.memberRepo.FindByWorkspaceID(ctx, workspaceID)
	if err != nil {
		uc.logger.Error("멤버 목록 조회 실패",
			zap.String("user_id", userID),
			zap.String("workspace_id", workspaceID),
			zap.Error(err))
		return nil, domainErrors.NewStorageError(userID, workspaceID, err)
	}
	return members, nil
}

// InviteUser 이메일로 등록된 사용자를 초대합니다.
// 이미 멤버면 역할을 교체하고, owner는 재초대할 수 없습니다.
func (uc *WorkspaceUserUseCase) InviteUser(ctx context.Context, params dto.InviteUserParams) (*entity.WorkspaceUser, error) {
	requestID := requestIDFrom(ctx, "inv")

	// 1. 초대 권한 확인 (owner, admin)
	if _, err := uc.access.RequireRole(ctx, params.InviterID, params.WorkspaceID, entity.RoleAdmin); err != nil {
		return nil, err
	}

	// 2. 입력 검증
	email := strings.TrimSpace(params.Email)
	if err := uc.validate.Var(email, "required,email"); err != nil {
		return nil, domainErrors.NewInvalidInvitationError(params.InviterID, params.WorkspaceID, errInvalidEmail)
	}
	role, err := entity.ParseInvitationRole(params.Role)
	if err != nil {
		return nil, domainErrors.NewInvalidInvitationError(params.InviterID, params.WorkspaceID, err)
	}

	// 3. 초대 대상 조회
	invitee, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domainErrors.NewStorageError(params.InviterID, params.WorkspaceID, err)
	}
	if invitee == nil || !invitee.IsActive() {
		uc.logger.Info("초대 대상 사용자 없음",
			zap.String("request_id", requestID),
			zap.String("workspace_id", params.WorkspaceID))
		return nil, domainErrors.NewInviteeNotFoundError(params.InviterID, params.WorkspaceID)
	}

	// 4. 멤버십 생성 또는 역할 교체
	member, err := uc.upsertMember(ctx, params, invitee.ID, role)
	if err != nil {
		return nil, err
	}

	// 5. 부수 작업
	uc.sendInvitationMail(ctx, requestID, params, invitee, role)
	uc.notifier.touchMember(ctx, member)
	uc.notifier.invalidateLists(ctx, invitee.ID)
	uc.notifier.publish(ctx, &entity.WorkspaceEvent{
		Type:         entity.EventMemberInvited,
		WorkspaceID:  params.WorkspaceID,
		ActorID:      params.InviterID,
		TargetUserID: invitee.ID,
		Role:         role,
		OccurredAt:   uc.now(),
	})

	uc.logger.Info("워크스페이스 초대 완료",
		zap.String("request_id", requestID),
		zap.String("workspace_id", params.WorkspaceID),
		zap.String("inviter_id", params.InviterID),
		zap.String("invitee_id", invitee.ID),
		zap.String("role", role.String()))

	return member, nil
}

func (uc *WorkspaceUserUseCase) upsertMember(ctx context.Context, params dto.InviteUserParams, inviteeID string, role entity.Role) (*entity.WorkspaceUser, error) {
	existing, err := uc.memberRepo.Find(ctx, params.WorkspaceID, inviteeID)
	if err != nil {
		return nil, domainErrors.NewStorageError(params.InviterID, params.WorkspaceID, err)
	}

	if existing != nil {
		if existing.IsOwner() {
			return nil, domainErrors.NewOwnerReinviteError(params.InviterID, params.WorkspaceID)
		}
		if err := uc.memberRepo.UpdateRole(ctx, params.WorkspaceID, inviteeID, role); err != nil {
			return nil, domainErrors.NewStorageError(params.InviterID, params.WorkspaceID, err)
		}
		existing.Role = role
		return existing, nil
	}

	member, err := entity.NewWorkspaceUser(params.WorkspaceID, inviteeID, role, uc.now())
	if err != nil {
		return nil, domainErrors.NewInvalidInvitationError(params.InviterID, params.WorkspaceID, err)
	}
	if err := uc.memberRepo.Create(ctx, member); err != nil {
		return nil, domainErrors.NewStorageError(params.InviterID, params.WorkspaceID, err)
	}
	return member, nil
}

func (uc *WorkspaceUserUseCase) sendInvitationMail(ctx context.Context, requestID string, params dto.InviteUserParams, invitee *entity.User, role entity.Role) {
	workspace, err := uc.workspaceRepo.FindByID(ctx, params.WorkspaceID)
	if err != nil || workspace == nil {
		uc.logger.Warn("초대 메일용 워크스페이스 조회 실패",
			zap.String("request_id", requestID),
			zap.String("workspace_id", params.WorkspaceID),
			zap.Error(err))
		return
	}

	inviterName := params.InviterID
	if inviter, err := uc.userRepo.FindByID(ctx, params.InviterID); err == nil && inviter != nil && inviter.Name != "" {
		inviterName = inviter.Name
	}

	subject := uc.templates.InvitationSubject(workspace.Name)
	body := uc.templates.GenerateInvitationEmailHTML(invitee.Name, inviterName, workspace.Name, workspace.ID, role.String())
	if err := uc.mailRepo.SendMail(ctx, invitee.Email, subject, body); err != nil {
		uc.logger.Warn("초대 메일 발송 실패",
			zap.String("request_id", requestID),
			zap.String("workspace_id", params.WorkspaceID),
			zap.String("invitee_id", invitee.ID),
			zap.Error(err))
	}
}
