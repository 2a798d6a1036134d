// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const passwordChangedConfirmation = "Password updated successfully"

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete user registration process. The email
// pre-check and insert run in one transaction; the store's unique constraint
// on email remains the authoritative guard against concurrent registrations.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	srv.log(ctx).Info("Starting user registration", slog.String("email", input.Email))

	// Hash before entering the transaction; bcrypt is CPU-bound and must not
	// hold a database connection.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	newUser := &entity.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		// 1. Fast-path existence check for a friendly Conflict error.
		_, err := userRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrEmailTaken.WrapMessage("user registration failed")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email availability")
		}

		// 2. Insert; a concurrent registration slipping past the check still
		// surfaces as the same Conflict via the unique constraint.
		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to execute user registration transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.log(ctx).Debug("User registered successfully", slog.Any("userID", newUser.ID))

	return newUser, nil
}

// Login orchestrates the user login process. Unknown email and wrong
// password both collapse into the same invalid-credentials failure so
// callers cannot enumerate registered accounts.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	token, err := srv.tokenService.Issue(service.IdentityClaim{
		UserID: user.ID,
		Email:  user.Email,
	})
	if err != nil {
		srv.log(ctx).Error("Failed to issue token during login", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{Token: token}, nil
}

// ListUsers returns all user records.
func (srv *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// GetUser resolves a single user by id.
func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("user lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

// UpdateProfile applies only the provided firstName/lastName/email fields.
// Identity, password and creation time are never touched here.
func (srv *userService) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) (*entity.User, error) {
	srv.log(ctx).Info("Updating user profile", slog.Any("userID", input.UserID))

	user, err := srv.GetUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		srv.log(ctx).Warn("Failed to update user profile", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update user profile")
	}

	srv.log(ctx).Debug("User profile updated", slog.Any("userID", user.ID))

	return user, nil
}

// ChangePassword verifies the current password before persisting a hash of
// the new one.
func (srv *userService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) (string, error) {
	srv.log(ctx).Info("Changing user password", slog.Any("userID", input.UserID))

	user, err := srv.GetUser(ctx, input.UserID)
	if err != nil {
		return "", err
	}

	if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
		srv.log(ctx).Warn("Password change rejected", slog.Any("userID", input.UserID))

		return "", domainerrors.ErrInvalidCredentials.WrapMessage("current password is incorrect")
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during password change", slog.Any("error", err))

		return "", domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash new password")
	}

	user.PasswordHash = hashedPassword
	if err := srv.userRepo.Update(ctx, user); err != nil {
		srv.log(ctx).Warn("Failed to persist new password", slog.Any("userID", input.UserID), slog.Any("error", err))

		return "", errors.Wrap(err, "failed to persist new password")
	}

	srv.log(ctx).Debug("Password changed", slog.Any("userID", user.ID))

	return passwordChangedConfirmation, nil
}

// Remove deletes the account. The store treats deleting an unknown id as
// success, so repeated removals never error.
func (srv *userService) Remove(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Removing user", slog.Any("userID", id))

	if err := srv.userRepo.DeleteByID(ctx, id); err != nil {
		srv.log(ctx).Error("Failed to remove user", slog.Any("userID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to remove user")
	}

	return nil
}
