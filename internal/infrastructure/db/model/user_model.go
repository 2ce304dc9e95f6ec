package model

import (
	"gorm.io/gorm"
)

// UserModel 인증 서비스의 users 테이블 중 이 서비스가 읽는 컬럼
type UserModel struct {
	ID            string         `gorm:"type:char(12);primaryKey"`
	Name          string         `gorm:"size:100;not null;default:''"`
	Email         string         `gorm:"size:250;not null;uniqueIndex"`
	AccountStatus string         `gorm:"size:50;default:'active'"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName 테이블 이름 지정
func (UserModel) TableName() string {
	return "users"
}
