package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/entity"
	"github.com/wekeepgrowing/semo-workspace/internal/domain/repository"
	"github.com/wekeepgrowing/semo-workspace/internal/infrastructure/db/model"
)

type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository 사용자 조회 레포지토리 구현체 생성
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func toUserEntity(m *model.UserModel) *entity.User {
	return &entity.User{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		AccountStatus: m.AccountStatus,
	}
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var m model.UserModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// FindByEmail 대소문자를 구분하지 않고 이메일로 조회
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var m model.UserModel
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}
