package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/service"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTokenService recognizes exactly one token string.
type stubTokenService struct {
	validToken string
	claim      service.IdentityClaim
	verifyErr  error
}

func (s *stubTokenService) Issue(service.IdentityClaim) (string, error) {
	return s.validToken, nil
}

func (s *stubTokenService) Verify(token string) (*service.IdentityClaim, error) {
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	if token != s.validToken {
		return nil, service.ErrTokenInvalid
	}
	claim := s.claim

	return &claim, nil
}

// stubUsecase serves GetUser from a fixed map; the guard uses nothing else.
type stubUsecase struct {
	users map[uuid.UUID]*entity.User
}

func (s *stubUsecase) Register(context.Context, *usecase.RegisterInput) (*entity.User, error) {
	panic("not used")
}

func (s *stubUsecase) Login(context.Context, *usecase.LoginInput) (*usecase.LoginOutput, error) {
	panic("not used")
}

func (s *stubUsecase) ListUsers(context.Context) ([]*entity.User, error) {
	panic("not used")
}

func (s *stubUsecase) GetUser(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("user lookup failed")
	}

	return user, nil
}

func (s *stubUsecase) UpdateProfile(context.Context, *usecase.UpdateProfileInput) (*entity.User, error) {
	panic("not used")
}

func (s *stubUsecase) ChangePassword(context.Context, *usecase.ChangePasswordInput) (string, error) {
	panic("not used")
}

func (s *stubUsecase) Remove(context.Context, uuid.UUID) error {
	panic("not used")
}

func invokeGuard(t *testing.T, mw *AuthMiddleware, authHeader string) (bool, *entity.User, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var nextCalled bool
	var attached *entity.User
	next := func(c echo.Context) error {
		nextCalled = true
		attached, _ = deliverycontext.GetCurrentUser(c.Request().Context())

		return nil
	}

	err := mw.Authenticate(next)(c)

	return nextCalled, attached, err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "valid@example.com"}
	tokenSvc := &stubTokenService{
		validToken: "good-token",
		claim:      service.IdentityClaim{UserID: user.ID, Email: user.Email},
	}
	mw := NewAuthMiddleware(tokenSvc, &stubUsecase{users: map[uuid.UUID]*entity.User{user.ID: user}})

	nextCalled, attached, err := invokeGuard(t, mw, "Bearer good-token")

	require.NoError(t, err)
	assert.True(t, nextCalled)
	require.NotNil(t, attached)
	assert.Equal(t, user.ID, attached.ID)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	mw := NewAuthMiddleware(&stubTokenService{validToken: "good-token"}, &stubUsecase{})

	nextCalled, _, err := invokeGuard(t, mw, "")

	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	assert.False(t, nextCalled)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	mw := NewAuthMiddleware(&stubTokenService{validToken: "good-token"}, &stubUsecase{})

	for _, header := range []string{"good-token", "Basic good-token", "Bearer "} {
		nextCalled, _, err := invokeGuard(t, mw, header)

		assert.ErrorIs(t, err, domainerrors.ErrUnauthorized, "header %q", header)
		assert.False(t, nextCalled, "header %q", header)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	tokenSvc := &stubTokenService{verifyErr: service.ErrTokenExpired}
	mw := NewAuthMiddleware(tokenSvc, &stubUsecase{})

	nextCalled, _, err := invokeGuard(t, mw, "Bearer whatever")

	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	assert.False(t, nextCalled)
}

func TestAuthMiddleware_TokenForRemovedUser(t *testing.T) {
	// The token itself still verifies, but its subject no longer exists.
	tokenSvc := &stubTokenService{
		validToken: "orphan-token",
		claim:      service.IdentityClaim{UserID: uuid.New(), Email: "gone@example.com"},
	}
	mw := NewAuthMiddleware(tokenSvc, &stubUsecase{users: map[uuid.UUID]*entity.User{}})

	nextCalled, _, err := invokeGuard(t, mw, "Bearer orphan-token")

	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	assert.False(t, nextCalled)
}
