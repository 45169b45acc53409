package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/http/auth"
)

func TestTokenManager(t *testing.T) {
	m := auth.NewTokenManager("secret", time.Hour)

	token, err := m.Issue("admin", "administrator")
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "administrator", claims.Role)

	_, err = auth.NewTokenManager("other", time.Hour).Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = m.Verify("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenManager_Expired(t *testing.T) {
	m := auth.NewTokenManager("secret", -time.Minute)

	token, err := m.Issue("admin", "administrator")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}
