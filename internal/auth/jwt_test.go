package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(accessTTL, emailTTL time.Duration) *JWTService {
	return NewJWTService("test-secret", accessTTL, emailTTL)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService(time.Hour, time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "a@b.com", true)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(token, PurposeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.True(t, claims.Admin)
}

func TestEmailTokenPurposeIsEnforced(t *testing.T) {
	svc := newTestService(time.Hour, time.Hour)

	token, err := svc.GenerateEmailToken("user-1", "a@b.com", PurposeVerifyEmail)
	require.NoError(t, err)

	// A verification token must not pass as an access or reset token.
	_, err = svc.ValidateToken(token, PurposeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.ValidateToken(token, PurposePasswordReset)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := svc.ValidateToken(token, PurposeVerifyEmail)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestExpiredToken(t *testing.T) {
	svc := newTestService(-time.Minute, time.Hour)

	token, _, err := svc.GenerateAccessToken("user-1", "a@b.com", false)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token, PurposeAccess)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenFromOtherSecretIsRejected(t *testing.T) {
	svc := newTestService(time.Hour, time.Hour)
	other := NewJWTService("other-secret", time.Hour, time.Hour)

	token, _, err := other.GenerateAccessToken("user-1", "a@b.com", false)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token, PurposeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGarbageToken(t *testing.T) {
	svc := newTestService(time.Hour, time.Hour)
	_, err := svc.ValidateToken("not.a.token", PurposeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
