package entity

import "time"

// EventType 워크스페이스 도메인 이벤트 종류
type EventType string

const (
	EventWorkspaceCreated EventType = "workspace.created"
	EventWorkspaceUpdated EventType = "workspace.updated"
	EventWorkspaceDeleted EventType = "workspace.deleted"
	EventMemberInvited    EventType = "workspace.member_invited"
)

// WorkspaceEvent 워크스페이스 변경 시 발행되는 이벤트
type WorkspaceEvent struct {
	Type        EventType `json:"-"`
	WorkspaceID string    `json:"workspace_id"`
	ActorID     string    `json:"actor_id"`
	// TargetUserID 초대 이벤트의 대상 사용자
	TargetUserID string    `json:"target_user_id,omitempty"`
	Role         Role      `json:"role,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
