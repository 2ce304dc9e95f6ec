package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"", RoleMember, false},
		{"owner", RoleOwner, false},
		{"admin", RoleAdmin, false},
		{"member", RoleMember, false},
		{"Admin", "", true},
		{"guest", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInvitationRole_RejectsOwner(t *testing.T) {
	_, err := ParseInvitationRole("owner")
	assert.ErrorIs(t, err, ErrInvalidRole)

	role, err := ParseInvitationRole("")
	require.NoError(t, err)
	assert.Equal(t, RoleMember, role)
}

func TestRole_AtLeast(t *testing.T) {
	assert.True(t, RoleOwner.AtLeast(RoleAdmin))
	assert.True(t, RoleAdmin.AtLeast(RoleAdmin))
	assert.False(t, RoleMember.AtLeast(RoleAdmin))
	assert.True(t, RoleMember.AtLeast(RoleMember))
	assert.False(t, Role("guest").AtLeast(RoleMember))
}

func TestNewWorkspaceUser(t *testing.T) {
	now := time.Now()

	m, err := NewWorkspaceUser("W12ABCDEFGHI", "U12ABCDEFGHI", RoleOwner, now)
	require.NoError(t, err)
	assert.True(t, m.IsOwner())
	assert.Equal(t, now, m.CreatedAt)

	_, err = NewWorkspaceUser("", "U12ABCDEFGHI", RoleMember, now)
	assert.Error(t, err)

	_, err = NewWorkspaceUser("W12ABCDEFGHI", "U12ABCDEFGHI", Role("guest"), now)
	assert.ErrorIs(t, err, ErrInvalidRole)
}
