package service

import (
	"errors"

	"github.com/google/uuid"
)

// Token verification failures. Expiry and everything else (bad signature,
// malformed structure, wrong algorithm) are kept distinct so callers can
// report them separately; both ultimately reject the request.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// IdentityClaim is the minimal data embedded in a bearer token to resolve
// the authenticated user.
type IdentityClaim struct {
	UserID uuid.UUID
	Email  string
}

// TokenService defines the interface for issuing and verifying signed,
// expiring bearer tokens. Verification is stateless; there is no revocation
// list, expiry is the only invalidation mechanism.
type TokenService interface {
	// Issue produces a signed token encoding the claim with an absolute
	// expiry set from the configured lifetime.
	Issue(claim IdentityClaim) (string, error)

	// Verify checks the token's signature and expiry. It returns
	// ErrTokenExpired when the token is past its expiry and ErrTokenInvalid
	// for any other defect; otherwise it returns the embedded claim unchanged.
	Verify(token string) (*IdentityClaim, error)
}
