package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/wekeepgrowing/semo-workspace/pkg/errors"
)

func TestWorkspaceError_Code(t *testing.T) {
	tests := []struct {
		name string
		err  *WorkspaceError
		want string
	}{
		{"not found", NewWorkspaceNotFoundError("u1", "w1"), apperrors.ErrNotFound},
		{"not member", NewUserNotMemberError("u1", "w1"), apperrors.ErrUnauthorized},
		{"insufficient role", NewInsufficientPermissionsError("u1", "w1"), apperrors.ErrUnauthorized},
		{"invalid workspace", NewInvalidWorkspaceError("u1", "", fmt.Errorf("name required")), apperrors.ErrInvalidArgument},
		{"invitee missing", NewInviteeNotFoundError("u1", "w1"), apperrors.ErrNotFound},
		{"owner reinvite", NewOwnerReinviteError("u1", "w1"), apperrors.ErrConflict},
		{"storage", NewStorageError("u1", "w1", fmt.Errorf("db down")), apperrors.ErrInternal},
		{"unknown type", &WorkspaceError{Type: "SOMETHING"}, apperrors.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Code())
			assert.Equal(t, tt.want, apperrors.CodeOf(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}
}

func TestWorkspaceError_Error(t *testing.T) {
	cause := fmt.Errorf("db down")
	err := NewStorageError("u1", "w1", cause)

	assert.Equal(t, "STORAGE_FAILED: workspace storage operation failed (user: u1, workspace: w1) - db down", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsType(fmt.Errorf("ctx: %w", err), ErrTypeStorageFailed))
	assert.False(t, IsType(cause, ErrTypeStorageFailed))
}
