package constants

import "time"

// Redis 키 관련 상수
const (
	// WorkspaceListKeyPrefix 사용자별 워크스페이스 목록 캐시 키 접두사
	WorkspaceListKeyPrefix = "workspace:list:"

	// DefaultWorkspaceListExpiry 설정값이 없을 때의 목록 캐시 만료 시간
	DefaultWorkspaceListExpiry = 5 * time.Minute
)

// WorkspaceListKey 사용자 워크스페이스 목록 캐시 키
func WorkspaceListKey(userID string) string {
	return WorkspaceListKeyPrefix + userID
}
