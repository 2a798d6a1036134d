package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/infra/auth"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// memUserRepo is an in-memory UserRepository used in place of the database.
// It mirrors the store's contract: assigned ids, unique emails, and silent
// deletes of unknown ids.
type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]entity.User)}
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return &user, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return &user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		u := user
		out = append(out, &u)
	}

	return out, nil
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domainerrors.ErrEmailTaken.WrapMessage("unique constraint violated")
		}
	}

	user.ID = uuid.New()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user

	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}

	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user

	return nil
}

func (r *memUserRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)

	return nil
}

// fakeTxManager runs the transactional closure directly against the backing
// repository; commit and rollback are the store's concern, so the fake only
// propagates the closure's error.
type fakeTxManager struct {
	repo repository.UserRepository
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(&fakeRepoFactory{repo: m.repo})
}

type fakeRepoFactory struct {
	repo repository.UserRepository
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository {
	return f.repo
}

// fakeTokenService issues predictable tokens and remembers the last claim.
type fakeTokenService struct {
	lastClaim service.IdentityClaim
	issueErr  error
}

func (s *fakeTokenService) Issue(claim service.IdentityClaim) (string, error) {
	if s.issueErr != nil {
		return "", s.issueErr
	}
	s.lastClaim = claim

	return "token-" + claim.UserID.String(), nil
}

func (s *fakeTokenService) Verify(token string) (*service.IdentityClaim, error) {
	if token != "token-"+s.lastClaim.UserID.String() {
		return nil, service.ErrTokenInvalid
	}
	claim := s.lastClaim

	return &claim, nil
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service      usecase.UserUsecase
	userRepo     *memUserRepo
	hasher       service.PasswordHasher
	tokenService *fakeTokenService
}

func createTestUserService() userServiceFixtures {
	userRepo := newMemUserRepo()
	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)
	tokenService := &fakeTokenService{}

	svc := NewUserService(UserServiceParams{
		TxManager:    &fakeTxManager{repo: userRepo},
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       newDiscardLogger(),
	})

	return userServiceFixtures{
		service:      svc,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}
