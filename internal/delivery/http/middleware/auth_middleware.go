package middleware

import (
	"strings"

	deliverycontext "accounts/internal/delivery/context"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/service"
	"accounts/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware guards routes that require an authenticated caller.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userUc   usecase.UserUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userUc usecase.UserUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userUc: userUc}
}

// Authenticate validates the bearer token and resolves the caller's account
// before the handler runs. A missing header, a malformed header, an expired
// or invalid token, and a token whose subject no longer exists all produce
// the same 401 so nothing about token state leaks to the caller.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrUnauthorized
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return domainerrors.ErrUnauthorized
		}

		claim, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			return domainerrors.ErrUnauthorized
		}

		// Re-resolve the identity on every call; a token issued before the
		// account was removed must not grant access.
		user, err := m.userUc.GetUser(c.Request().Context(), claim.UserID)
		if err != nil {
			return domainerrors.ErrUnauthorized
		}

		ctx := deliverycontext.WithCurrentUser(c.Request().Context(), user)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
