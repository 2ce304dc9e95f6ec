package entity

import (
	"errors"
	"time"
)

// Role 워크스페이스 내 역할
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

var ErrInvalidRole = errors.New("역할은 owner, admin, member 중 하나여야 합니다")

// ParseRole 문자열을 역할로 변환합니다. 빈 문자열은 member.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "":
		return RoleMember, nil
	case RoleOwner, RoleAdmin, RoleMember:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

// ParseInvitationRole 초대 시 부여 가능한 역할로 변환합니다. owner는 생성 시에만 부여됩니다.
func ParseInvitationRole(s string) (Role, error) {
	role, err := ParseRole(s)
	if err != nil {
		return "", err
	}
	if role == RoleOwner {
		return "", ErrInvalidRole
	}
	return role, nil
}

func (r Role) rank() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleAdmin:
		return 2
	case RoleMember:
		return 1
	default:
		return 0
	}
}

// AtLeast r이 min 이상의 권한인지 확인합니다.
func (r Role) AtLeast(min Role) bool {
	return r.rank() > 0 && r.rank() >= min.rank()
}

func (r Role) String() string {
	return string(r)
}

// WorkspaceUser 사용자와 워크스페이스의 멤버십. (WorkspaceID, UserID) 쌍이 유일합니다.
type WorkspaceUser struct {
	WorkspaceID string
	UserID      string
	Role        Role
	CreatedAt   time.Time
}

// NewWorkspaceUser 멤버십 생성 팩토리 함수
func NewWorkspaceUser(workspaceID, userID string, role Role, now time.Time) (*WorkspaceUser, error) {
	if workspaceID == "" || userID == "" {
		return nil, errors.New("워크스페이스 ID와 사용자 ID는 필수입니다")
	}
	if role.rank() == 0 {
		return nil, ErrInvalidRole
	}

	return &WorkspaceUser{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
		CreatedAt:   now,
	}, nil
}

// IsOwner 소유자 멤버십인지 확인
func (m *WorkspaceUser) IsOwner() bool {
	return m.Role == RoleOwner
}
