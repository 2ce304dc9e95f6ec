package errors

import (
	"errors"
	"fmt"

	apperrors "github.com/wekeepgrowing/semo-workspace/pkg/errors"
)

// WorkspaceError represents errors related to workspace operations
type WorkspaceError struct {
	Type        string
	Message     string
	UserID      string
	WorkspaceID string
	Cause       error
}

func (e *WorkspaceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (user: %s, workspace: %s) - %v",
			e.Type, e.Message, e.UserID, e.WorkspaceID, e.Cause)
	}
	return fmt.Sprintf("%s: %s (user: %s, workspace: %s)",
		e.Type, e.Message, e.UserID, e.WorkspaceID)
}

func (e *WorkspaceError) Unwrap() error {
	return e.Cause
}

// Code maps the error type onto a pkg/errors code.
func (e *WorkspaceError) Code() string {
	if code, ok := codeByType[e.Type]; ok {
		return code
	}
	return apperrors.ErrInternal
}

// Workspace error types
const (
	ErrTypeWorkspaceNotFound       = "WORKSPACE_NOT_FOUND"
	ErrTypeUserNotMember           = "USER_NOT_MEMBER"
	ErrTypeInsufficientPermissions = "INSUFFICIENT_PERMISSIONS"
	ErrTypeInvalidWorkspace        = "INVALID_WORKSPACE"
	ErrTypeInvalidInvitation       = "INVALID_INVITATION"
	ErrTypeInviteeNotFound         = "INVITEE_NOT_FOUND"
	ErrTypeOwnerReinvite           = "OWNER_REINVITE"
	ErrTypeStorageFailed           = "STORAGE_FAILED"
)

var codeByType = map[string]string{
	ErrTypeWorkspaceNotFound:       apperrors.ErrNotFound,
	ErrTypeUserNotMember:           apperrors.ErrUnauthorized,
	ErrTypeInsufficientPermissions: apperrors.ErrUnauthorized,
	ErrTypeInvalidWorkspace:        apperrors.ErrInvalidArgument,
	ErrTypeInvalidInvitation:       apperrors.ErrInvalidArgument,
	ErrTypeInviteeNotFound:         apperrors.ErrNotFound,
	ErrTypeOwnerReinvite:           apperrors.ErrConflict,
	ErrTypeStorageFailed:           apperrors.ErrInternal,
}

// NewWorkspaceNotFoundError creates a new workspace not found error
func NewWorkspaceNotFoundError(userID, workspaceID string) *WorkspaceError {
	return &WorkspaceError{
		Type:        ErrTypeWorkspaceNotFound,
		Message:     "workspace not found",
		UserID:      userID,
		WorkspaceID: workspaceID,
	}
}

// NewUserNotMemberError creates a new user not member error
func NewUserNotMemberError(userID, workspaceID string) *WorkspaceError {
	return &WorkspaceError{
		Type:        ErrTypeUserNotMember,
		Message:     "user is not a member of the workspace",
		UserID:      userID,
		WorkspaceID: workspaceID,
	}
}

// NewInsufficientPermissionsError creates a new insufficient permissions error
func NewInsufficientPermissionsError(userID, workspaceID string) *WorkspaceError {
	return &WorkspaceError{
		Type:        ErrTypeInsufficientPermissions,
		Message:     "user does not have sufficient permissions for this workspace",
		UserID:      userID,
		WorkspaceID: workspaceID,
	}
}

// NewInvalidWorkspaceError wraps a validation failure of name or description.
func NewInvalidWorkspaceError(userID, workspaceID string, cause error) *WorkspaceError {
	return &WorkspaceError{
		Type:        ErrTypeInvalidWorkspace,
		Message:     cause.Error(),
		UserID:      userID,
		WorkspaceID: workspaceID,
		Cause:       cause,
	}
}

// NewInvalidInvitationError wraps a validation failure of email or role.
func NewInvalidInvitationError(userID, workspaceID string, cause error) *WorkspaceError {
	return &WorkspaceError{
		Type:        ErrTypeInvalidInvitation,
		Message:     cause.Error(),
		UserID:      userID,
		WorkspaceID: workspaceID,
		Cause:       cause,
	}
}

// NewInviteeNotFoundError is returned when no user is registered under the invited email.
func NewInviteeNotFoundError(userID, workspaceID string) *WorkspaceError {
	return &WorkspaceError{
		Type:        ErrTypeInviteeNotFound,
		Message:     "no user is registered with this email",
		UserID:      userID,
		WorkspaceID: workspaceID,
	}
}

// NewOwnerReinviteError is returned when an invitation targets the workspace owner.
func NewOwnerReinviteError(userID, workspaceID string) *WorkspaceError {
	return &WorkspaceError{
		Type:        ErrTypeOwnerReinvite,
		Message:     "the workspace owner cannot be re-invited",
		UserID:      userID,
		WorkspaceID: workspaceID,
	}
}

// NewStorageError wraps a persistence failure.
func NewStorageError(userID, workspaceID string, cause error) *WorkspaceError {
	return &WorkspaceError{
		Type:        ErrTypeStorageFailed,
		Message:     "workspace storage operation failed",
		UserID:      userID,
		WorkspaceID: workspaceID,
		Cause:       cause,
	}
}

// IsType reports whether err is a WorkspaceError of the given type.
func IsType(err error, errType string) bool {
	var wsErr *WorkspaceError
	return errors.As(err, &wsErr) && wsErr.Type == errType
}
