package dto

import "time"

// CreateWorkspaceParams 워크스페이스 생성 요청 정보
type CreateWorkspaceParams struct {
	UserID      string  // 생성자, owner가 됨
	Name        string  // 이름
	Description *string // 설명 (nil이면 없음)
}

// UpdateWorkspaceParams 워크스페이스 수정 요청 정보
type UpdateWorkspaceParams struct {
	UserID      string
	WorkspaceID string
	Name        string
	Description *string
}

// InviteUserParams 멤버 초대 요청 정보
type InviteUserParams struct {
	InviterID   string // 초대한 사용자
	WorkspaceID string
	Email       string // 초대받을 사용자 이메일
	Role        string // admin | member, 빈 값이면 member
}

// CachedWorkspace 목록 캐시에 저장되는 워크스페이스 형식
type CachedWorkspace struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
