package auth

import (
	"testing"
	"time"

	"accounts/config"
	"accounts/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Signing = secret

	return cfg
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("test_signing_secret_long_enough"))
	require.NoError(t, err)

	claim := service.IdentityClaim{
		UserID: uuid.New(),
		Email:  "test@example.com",
	}

	token, err := svc.Issue(claim)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	verified, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, claim.UserID, verified.UserID)
	assert.Equal(t, claim.Email, verified.Email)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := &jwtService{
		secret: []byte("test_signing_secret_long_enough"),
		ttl:    -time.Minute,
	}

	token, err := svc.Issue(service.IdentityClaim{UserID: uuid.New(), Email: "expired@example.com"})
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("test_signing_secret_long_enough"))
	require.NoError(t, err)

	token, err := svc.Issue(service.IdentityClaim{UserID: uuid.New(), Email: "tamper@example.com"})
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	claims, err := svc.Verify(tampered)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(newTestConfig("issuer_secret_long_enough_for_tests"))
	require.NoError(t, err)
	verifier, err := NewJWTService(newTestConfig("different_secret_long_enough_here"))
	require.NoError(t, err)

	token, err := issuer.Issue(service.IdentityClaim{UserID: uuid.New(), Email: "cross@example.com"})
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("test_signing_secret_long_enough"))
	require.NoError(t, err)

	claims, err := svc.Verify("clearly-not-a-jwt-token")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestNewJWTService_EmptySecret(t *testing.T) {
	svc, err := NewJWTService(newTestConfig(""))
	assert.Error(t, err)
	assert.Nil(t, svc)
}
