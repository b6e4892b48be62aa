package services

import (
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/CareVoice/carevoice-backend/errors"
	"github.com/CareVoice/carevoice-backend/types"
)

// TokenTTL is how long issued administrator tokens remain valid. There is no
// refresh mechanism; an expired token requires a new login.
const TokenTTL = 24 * time.Hour

// AuthService verifies the shared administrator secret and issues stateless
// bearer tokens. It holds no session state: expiry and secret rotation are
// the only revocation mechanisms.
type AuthService struct {
	adminPassword []byte
	signingKey    []byte
	now           func() time.Time
}

// NewAuthService creates an AuthService for the configured shared secret and
// token-signing key.
func NewAuthService(adminPassword, signingKey string) *AuthService {
	return &AuthService{
		adminPassword: []byte(adminPassword),
		signingKey:    []byte(signingKey),
		now:           time.Now,
	}
}

// NewAuthServiceWithClock is like NewAuthService with an injected clock, used
// by tests to exercise token expiry without waiting.
func NewAuthServiceWithClock(adminPassword, signingKey string, now func() time.Time) *AuthService {
	s := NewAuthService(adminPassword, signingKey)
	s.now = now
	return s
}

// Login compares the supplied secret against the configured administrator
// password and on match issues a signed token carrying the admin role claim.
// The comparison is constant-shape; a mismatch reveals nothing about how
// close the attempt was.
func (s *AuthService) Login(password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), s.adminPassword) != 1 {
		return "", apperrors.AuthenticationFailed("Invalid password")
	}

	now := s.now()
	claims := types.AdminClaims{
		Role: types.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ServerError, "Failed to issue token")
	}

	return token, nil
}

// Verify validates a bearer token and returns its role claim. It fails for
// malformed tokens, bad signatures, unexpected signing methods, and expiry.
func (s *AuthService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &types.AdminClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", apperrors.AuthenticationFailed("Invalid or expired token")
	}

	claims, ok := token.Claims.(*types.AdminClaims)
	if !ok || claims.Role == "" {
		return "", apperrors.AuthenticationFailed("Invalid token structure")
	}

	return claims.Role, nil
}
