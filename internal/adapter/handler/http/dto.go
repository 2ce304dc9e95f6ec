package http

import (
	"time"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/entity"
)

// WorkspaceRequest 워크스페이스 생성/수정 요청 본문
type WorkspaceRequest struct {
	Name        string  `json:"name" validate:"required,max=250"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// InvitationRequest 멤버 초대 요청 본문
type InvitationRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=admin member"`
}

// WorkspaceResponse 워크스페이스 응답. description은 없으면 null입니다.
type WorkspaceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WorkspaceUserResponse 멤버십 응답
type WorkspaceUserResponse struct {
	WorkspaceID string    `json:"workspace_id"`
	UserID      string    `json:"user_id"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

func toWorkspaceResponse(w *entity.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func toWorkspaceUserResponse(m *entity.WorkspaceUser) WorkspaceUserResponse {
	return WorkspaceUserResponse{
		WorkspaceID: m.WorkspaceID,
		UserID:      m.UserID,
		Role:        m.Role.String(),
		CreatedAt:   m.CreatedAt,
	}
}
