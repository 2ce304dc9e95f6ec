package client

import (
	"context"
	"time"
)

// Workspace is a workspace as seen by a client session.
// Description is nil when absent, which is distinct from an empty string.
type Workspace struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description *string   `json:"description" yaml:"description"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// WorkspaceUser is one membership of a user in a workspace.
type WorkspaceUser struct {
	WorkspaceID string    `json:"workspace_id" yaml:"workspace_id"`
	UserID      string    `json:"user_id" yaml:"user_id"`
	Role        string    `json:"role" yaml:"role"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// Backend is the system of record a WorkspaceContext talks to.
type Backend interface {
	ListWorkspaces(ctx context.Context) ([]Workspace, error)
	CreateWorkspace(ctx context.Context, name string, description *string) (*Workspace, error)
	UpdateWorkspace(ctx context.Context, id, name string, description *string) (*Workspace, error)
	DeleteWorkspace(ctx context.Context, id string) error
	ListWorkspaceUsers(ctx context.Context, workspaceID string) ([]WorkspaceUser, error)
	InviteUser(ctx context.Context, workspaceID, email, role string) (*WorkspaceUser, error)
}

func (w Workspace) clone() Workspace {
	if w.Description != nil {
		d := *w.Description
		w.Description = &d
	}
	return w
}

func cloneWorkspaces(in []Workspace) []Workspace {
	if in == nil {
		return nil
	}
	out := make([]Workspace, len(in))
	for i, w := range in {
		out[i] = w.clone()
	}
	return out
}

func cloneUsers(in []WorkspaceUser) []WorkspaceUser {
	if in == nil {
		return nil
	}
	out := make([]WorkspaceUser, len(in))
	copy(out, in)
	return out
}

// StringPtr returns a pointer to s, for optional descriptions.
func StringPtr(s string) *string {
	return &s
}
