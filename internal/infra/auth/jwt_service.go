// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"accounts/config"
	"accounts/internal/domain/service"
)

// tokenClaims is the wire layout of the bearer token payload.
type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte        // HS256 signing key, loaded once at startup.
	ttl    time.Duration // Absolute lifetime of issued tokens.
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Signing == "" {
		return nil, errors.New("jwt signing secret must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Signing),
		ttl:    cfg.TokenTTL(),
	}, nil
}

// Issue produces a signed HS256 token binding the user's id and email with
// an absolute expiry.
func (s *jwtService) Issue(claim service.IdentityClaim) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Email: claim.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claim.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify checks signature and expiry, returning the embedded identity claim.
// Expired tokens map to service.ErrTokenExpired; every other defect (bad
// signature, malformed structure, unexpected algorithm) maps to
// service.ErrTokenInvalid.
func (s *jwtService) Verify(tokenString string) (*service.IdentityClaim, error) {
	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		// Enforce HMAC signing; reject tokens claiming another algorithm.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, service.ErrTokenExpired
		}

		return nil, service.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, service.ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, service.ErrTokenInvalid
	}

	return &service.IdentityClaim{
		UserID: userID,
		Email:  claims.Email,
	}, nil
}
