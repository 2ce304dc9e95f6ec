package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewSpiceDBClient_Disabled(t *testing.T) {
	client, err := NewSpiceDBClient(Config{}, zap.NewNop())

	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestTokenAuth(t *testing.T) {
	md, err := tokenAuth{token: "secret"}.GetRequestMetadata(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", md["authorization"])
	assert.False(t, tokenAuth{}.RequireTransportSecurity())
}
