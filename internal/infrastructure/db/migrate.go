package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/wekeepgrowing/semo-workspace/internal/infrastructure/db/model"
)

// AutoMigrate 워크스페이스 테이블을 생성/갱신합니다. users 테이블은 인증 서비스가 관리합니다.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.WorkspaceModel{}, &model.WorkspaceUserModel{}); err != nil {
		return fmt.Errorf("마이그레이션 실패: %w", err)
	}
	return nil
}
