package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, expiresAt, err := tm.IssueAdminToken(42)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	userID, err := tm.VerifyAdminToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestAudiencesDoNotCross(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	adminToken, _, err := tm.IssueAdminToken(1)
	require.NoError(t, err)
	clientToken, _, err := tm.IssueClientToken(2)
	require.NoError(t, err)

	_, err = tm.VerifyClientToken(adminToken)
	assert.Error(t, err, "an admin token must not authenticate client routes")

	_, err = tm.VerifyAdminToken(clientToken)
	assert.Error(t, err, "a client token must not authenticate admin routes")
}

func TestExpiredTokenIsRejected(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, _, err := tm.IssueClientToken(7)
	require.NoError(t, err)

	_, err = tm.VerifyClientToken(token)
	assert.Error(t, err)
}

func TestWrongSecretIsRejected(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, _, err := issuer.IssueAdminToken(1)
	require.NoError(t, err)

	_, err = verifier.VerifyAdminToken(token)
	assert.Error(t, err)
}
