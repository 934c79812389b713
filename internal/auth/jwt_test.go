package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("sess-1", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "sess-1", claims.SessionID)
	require.Equal(t, "alice", claims.Username)
}

func TestValidateToken_Invalid(t *testing.T) {
	_, err := ValidateToken("invalid.token")
	require.Error(t, err)
}

func TestValidateToken_RejectsEmptySession(t *testing.T) {
	token, err := GenerateToken("", "alice")
	require.NoError(t, err)

	_, err = ValidateToken(token)
	require.Error(t, err)
}
