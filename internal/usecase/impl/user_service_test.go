package impl

import (
	"context"
	"testing"

	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerInput(email string) *usecase.RegisterInput {
	return &usecase.RegisterInput{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "Password123!",
	}
}

func TestUserService_Register_Success(t *testing.T) {
	f := createTestUserService()
	ctx := context.Background()

	user, err := f.service.Register(ctx, registerInput("test@example.com"))

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "test@example.com", user.Email)
	assert.False(t, user.CreatedAt.IsZero())

	// The stored credential is a verifiable hash, never the plaintext.
	assert.NotEqual(t, "Password123!", user.PasswordHash)
	assert.True(t, f.hasher.Check("Password123!", user.PasswordHash))
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	f := createTestUserService()
	ctx := context.Background()

	_, err := f.service.Register(ctx, registerInput("dup@example.com"))
	require.NoError(t, err)

	user, err := f.service.Register(ctx, registerInput("dup@example.com"))
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestUserService_Login_Success(t *testing.T) {
	f := createTestUserService()
	ctx := context.Background()

	registered, err := f.service.Register(ctx, registerInput("login@example.com"))
	require.NoError(t, err)

	output, err := f.service.Login(ctx, &usecase.LoginInput{
		Email:    "login@example.com",
		Password: "Password123!",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, output.Token)
	assert.Equal(t, registered.ID, f.tokenService.lastClaim.UserID)
	assert.Equal(t, "login@example.com", f.tokenService.lastClaim.Email)
}

func TestUserService_Login_BadCredentialsAreIndistinguishable(t *testing.T) {
	f := createTestUserService()
	ctx := context.Background()

	_, err := f.service.Register(ctx, registerInput("known@example.com"))
	require.NoError(t, err)

	// Unknown email and wrong password collapse into the same failure, so a
	// caller probing either learns nothing about which emails are registered.
	_, unknownErr := f.service.Login(ctx, &usecase.LoginInput{
		Email:    "unknown@example.com",
		Password: "Password123!",
	})
	_, wrongPassErr := f.service.Login(ctx, &usecase.LoginInput{
		Email:    "known@example.com",
		Password: "not the password",
	})

	assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, domainerrors.ErrInvalidCredentials)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	f := createTestUserService()

	user, err := f.service.GetUser(context.Background(), uuid.New())
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_ListUsers(t *testing.T) {
	f := createTestUserService()
	ctx := context.Background()

	users, err := f.service.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	_, err = f.service.Register(ctx, registerInput("a@example.com"))
	require.NoError(t, err)
	_, err = f.service.Register(ctx, registerInput("b@example.com"))
	require.NoError(t, err)

	users, err = f.service.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserService_UpdateProfile_PartialUpdate(t *testing.T) {
	f := createTestUserService()
	ctx := context.Background()

	registered, err := f.service.Register(ctx, registerInput("profile@example.com"))
	require.NoError(t, err)

	newFirst := "Renamed"
	updated, err := f.service.UpdateProfile(ctx, &usecase.UpdateProfileInput{
		UserID:    registered.ID,
		FirstName: &newFirst,
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.FirstName)
	assert.Equal(t, registered.LastName, updated.LastName)
	assert.Equal(t, registered.Email, updated.Email)
	assert.Equal(t, registered.PasswordHash, updated.PasswordHash)
	assert.Equal(t, registered.ID, updated.ID)
}

func TestUserService_UpdateProfile_UnknownUser(t *testing.T) {
	f := createTestUserService()

	newFirst := "Ghost"
	updated, err := f.service.UpdateProfile(context.Background(), &usecase.UpdateProfileInput{
		UserID:    uuid.New(),
		FirstName: &newFirst,
	})

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_ChangePassword_Success(t *testing.T) {
	f := createTestUserService()
	ctx := context.Background()

	registered, err := f.service.Register(ctx, registerInput("rotate@example.com"))
	require.NoError(t, err)

	confirmation, err := f.service.ChangePassword(ctx, &usecase.ChangePasswordInput{
		UserID:          registered.ID,
		CurrentPassword: "Password123!",
		NewPassword:     "NewPassword456!",
	})

	require.NoError(t, err)
	assert.Equal(t, "Password updated successfully", confirmation)

	// Old password no longer logs in; the new one does.
	_, err = f.service.Login(ctx, &usecase.LoginInput{
		Email:    "rotate@example.com",
		Password: "Password123!",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = f.service.Login(ctx, &usecase.LoginInput{
		Email:    "rotate@example.com",
		Password: "NewPassword456!",
	})
	assert.NoError(t, err)
}

func TestUserService_ChangePassword_WrongCurrentPassword(t *testing.T) {
	f := createTestUserService()
	ctx := context.Background()

	registered, err := f.service.Register(ctx, registerInput("guard@example.com"))
	require.NoError(t, err)

	confirmation, err := f.service.ChangePassword(ctx, &usecase.ChangePasswordInput{
		UserID:          registered.ID,
		CurrentPassword: "not the password",
		NewPassword:     "NewPassword456!",
	})

	assert.Empty(t, confirmation)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	// The stored credential is untouched after a rejected change.
	_, err = f.service.Login(ctx, &usecase.LoginInput{
		Email:    "guard@example.com",
		Password: "Password123!",
	})
	assert.NoError(t, err)
}

func TestUserService_Remove_IsIdempotent(t *testing.T) {
	f := createTestUserService()
	ctx := context.Background()

	registered, err := f.service.Register(ctx, registerInput("remove@example.com"))
	require.NoError(t, err)

	require.NoError(t, f.service.Remove(ctx, registered.ID))

	_, err = f.service.GetUser(ctx, registered.ID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	// Removing again, or removing an id that never existed, still succeeds.
	assert.NoError(t, f.service.Remove(ctx, registered.ID))
	assert.NoError(t, f.service.Remove(ctx, uuid.New()))
}
