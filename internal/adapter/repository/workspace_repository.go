package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/entity"
	"github.com/wekeepgrowing/semo-workspace/internal/domain/repository"
	"github.com/wekeepgrowing/semo-workspace/internal/infrastructure/db/model"
)

type WorkspaceRepositoryImpl struct {
	db *gorm.DB
}

// NewWorkspaceRepository 워크스페이스 레포지토리 구현체 생성
func NewWorkspaceRepository(db *gorm.DB) repository.WorkspaceRepository {
	return &WorkspaceRepositoryImpl{db: db}
}

func toWorkspaceModel(w *entity.Workspace) *model.WorkspaceModel {
	return &model.WorkspaceModel{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func toWorkspaceEntity(m *model.WorkspaceModel) *entity.Workspace {
	return &entity.Workspace{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FindByID ID로 워크스페이스 조회
func (r *WorkspaceRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.Workspace, error) {
	var m model.WorkspaceModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toWorkspaceEntity(&m), nil
}

// FindByUserID 사용자가 멤버인 워크스페이스 목록
func (r *WorkspaceRepositoryImpl) FindByUserID(ctx context.Context, userID string) ([]*entity.Workspace, error) {
	var models []model.WorkspaceModel
	err := r.db.WithContext(ctx).
		Joins("JOIN workspace_users ON workspace_users.workspace_id = workspaces.id").
		Where("workspace_users.user_id = ?", userID).
		Order("workspaces.created_at ASC, workspaces.id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	workspaces := make([]*entity.Workspace, 0, len(models))
	for i := range models {
		workspaces = append(workspaces, toWorkspaceEntity(&models[i]))
	}
	return workspaces, nil
}

// CreateWithOwner 워크스페이스와 소유자 멤버십을 함께 생성
func (r *WorkspaceRepositoryImpl) CreateWithOwner(ctx context.Context, workspace *entity.Workspace, owner *entity.WorkspaceUser) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(toWorkspaceModel(workspace)).Error; err != nil {
			return err
		}
		return tx.Create(toWorkspaceUserModel(owner)).Error
	})
}

// Update 이름, 설명, 수정 시각 갱신. Description이 nil이면 NULL로 저장합니다.
func (r *WorkspaceRepositoryImpl) Update(ctx context.Context, workspace *entity.Workspace) error {
	result := r.db.WithContext(ctx).
		Model(&model.WorkspaceModel{}).
		Where("id = ?", workspace.ID).
		Updates(map[string]interface{}{
			"name":        workspace.Name,
			"description": workspace.Description,
			"updated_at":  workspace.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 멤버십과 워크스페이스를 함께 삭제
func (r *WorkspaceRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workspace_id = ?", id).Delete(&model.WorkspaceUserModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.WorkspaceModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
