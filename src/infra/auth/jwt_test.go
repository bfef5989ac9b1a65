package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/src/infra/config"
)

func newService(t *testing.T) *TokenService {
	t.Helper()
	s, err := NewTokenService(config.AuthConfig{JWTSecret: "test-secret", JWTIssuer: "inventory", TokenTTL: time.Minute})
	require.NoError(t, err)
	return s
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService(config.AuthConfig{})
	assert.Error(t, err)
}

func TestIssueAndParse(t *testing.T) {
	s := newService(t)

	token, err := s.Issue("alice", []string{RoleManager})
	require.NoError(t, err)

	p, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Subject)
	assert.Equal(t, []string{RoleManager}, p.Roles)
	assert.True(t, p.HasAnyRole(RoleAdmin, RoleManager))
	assert.False(t, p.HasAnyRole(RoleAdmin))
}

func TestParseExpired(t *testing.T) {
	s := newService(t)
	s.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := s.Issue("bob", nil)
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongSecret(t *testing.T) {
	other, err := NewTokenService(config.AuthConfig{JWTSecret: "other", JWTIssuer: "inventory"})
	require.NoError(t, err)
	token, err := other.Issue("eve", []string{RoleAdmin})
	require.NoError(t, err)

	_, err = newService(t).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongIssuer(t *testing.T) {
	other, err := NewTokenService(config.AuthConfig{JWTSecret: "test-secret", JWTIssuer: "elsewhere"})
	require.NoError(t, err)
	token, err := other.Issue("eve", []string{RoleAdmin})
	require.NoError(t, err)

	_, err = newService(t).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSingleRoleClaim(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":  "carol",
		"iss":  "inventory",
		"exp":  time.Now().Add(time.Minute).Unix(),
		"role": RoleAdmin,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	p, err := newService(t).Parse(token)
	require.NoError(t, err)
	assert.Equal(t, []string{RoleAdmin}, p.Roles)
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.MapClaims{"sub": "mallory", "iss": "inventory", "exp": time.Now().Add(time.Minute).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newService(t).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
