package model

import (
	"time"
)

// WorkspaceModel 워크스페이스 ORM 모델
type WorkspaceModel struct {
	ID          string    `gorm:"type:char(12);primaryKey"`
	Name        string    `gorm:"size:250;not null"`
	Description *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`

	Members []WorkspaceUserModel `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE"`
}

// TableName 테이블 이름 지정
func (WorkspaceModel) TableName() string {
	return "workspaces"
}

// WorkspaceUserModel 워크스페이스 멤버십 ORM 모델. (workspace_id, user_id)가 기본 키입니다.
type WorkspaceUserModel struct {
	WorkspaceID string    `gorm:"type:char(12);primaryKey"`
	UserID      string    `gorm:"type:char(12);primaryKey;index"`
	Role        string    `gorm:"size:20;not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName 테이블 이름 지정
func (WorkspaceUserModel) TableName() string {
	return "workspace_users"
}
