package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/entity"
	"github.com/wekeepgrowing/semo-workspace/internal/domain/repository"
	"github.com/wekeepgrowing/semo-workspace/internal/infrastructure/db/model"
)

type WorkspaceUserRepositoryImpl struct {
	db *gorm.DB
}

// NewWorkspaceUserRepository 멤버십 레포지토리 구현체 생성
func NewWorkspaceUserRepository(db *gorm.DB) repository.WorkspaceUserRepository {
	return &WorkspaceUserRepositoryImpl{db: db}
}

func toWorkspaceUserModel(m *entity.WorkspaceUser) *model.WorkspaceUserModel {
	return &model.WorkspaceUserModel{
		WorkspaceID: m.WorkspaceID,
		UserID:      m.UserID,
		Role:        m.Role.String(),
		CreatedAt:   m.CreatedAt,
	}
}

func toWorkspaceUserEntity(m *model.WorkspaceUserModel) *entity.WorkspaceUser {
	return &entity.WorkspaceUser{
		WorkspaceID: m.WorkspaceID,
		UserID:      m.UserID,
		Role:        entity.Role(m.Role),
		CreatedAt:   m.CreatedAt,
	}
}

func (r *WorkspaceUserRepositoryImpl) Find(ctx context.Context, workspaceID, userID string) (*entity.WorkspaceUser, error) {
	var m model.WorkspaceUserModel
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toWorkspaceUserEntity(&m), nil
}

func (r *WorkspaceUserRepositoryImpl) FindByWorkspaceID(ctx context.Context, workspaceID string) ([]*entity.WorkspaceUser, error) {
	var models []model.WorkspaceUserModel
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC, user_id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	members := make([]*entity.WorkspaceUser, 0, len(models))
	for i := range models {
		members = append(members, toWorkspaceUserEntity(&models[i]))
	}
	return members, nil
}

func (r *WorkspaceUserRepositoryImpl) Create(ctx context.Context, member *entity.WorkspaceUser) error {
	return r.db.WithContext(ctx).Create(toWorkspaceUserModel(member)).Error
}

// UpdateRole 역할만 변경합니다. 가입 시각은 유지됩니다.
func (r *WorkspaceUserRepositoryImpl) UpdateRole(ctx context.Context, workspaceID, userID string, role entity.Role) error {
	result := r.db.WithContext(ctx).
		Model(&model.WorkspaceUserModel{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Update("role", role.String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
