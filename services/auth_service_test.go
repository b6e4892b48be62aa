package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/CareVoice/carevoice-backend/errors"
	"github.com/CareVoice/carevoice-backend/types"
)

const (
	testAdminPassword = "correct-horse-battery-staple"
	testSigningKey    = "0123456789abcdef0123456789abcdef"
)

func TestAuthService_Login(t *testing.T) {
	svc := NewAuthService(testAdminPassword, testSigningKey)

	t.Run("wrong password fails", func(t *testing.T) {
		_, err := svc.Login("wrong")
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.AuthError, appErr.Type)
		assert.Equal(t, 401, appErr.GetHTTPStatus())
	})

	t.Run("empty password fails", func(t *testing.T) {
		_, err := svc.Login("")
		assert.Error(t, err)
	})

	t.Run("correct password issues verifiable token", func(t *testing.T) {
		token, err := svc.Login(testAdminPassword)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		role, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, types.RoleAdmin, role)
	})
}

func TestAuthService_Verify(t *testing.T) {
	svc := NewAuthService(testAdminPassword, testSigningKey)

	t.Run("malformed token fails", func(t *testing.T) {
		_, err := svc.Verify("not-a-jwt")
		assert.Error(t, err)
	})

	t.Run("token signed with different key fails", func(t *testing.T) {
		other := NewAuthService(testAdminPassword, "ffffffffffffffffffffffffffffffff")
		token, err := other.Login(testAdminPassword)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.Error(t, err)
	})

	t.Run("empty token fails", func(t *testing.T) {
		_, err := svc.Verify("")
		assert.Error(t, err)
	})
}

func TestAuthService_TokenExpiry(t *testing.T) {
	current := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := NewAuthServiceWithClock(testAdminPassword, testSigningKey, func() time.Time {
		return current
	})

	token, err := svc.Login(testAdminPassword)
	require.NoError(t, err)

	// Still valid just inside the 24h window.
	current = current.Add(23 * time.Hour)
	_, err = svc.Verify(token)
	assert.NoError(t, err)

	// Expired past the window; no refresh path exists.
	current = current.Add(2 * time.Hour)
	_, err = svc.Verify(token)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.AuthError, appErr.Type)
}
