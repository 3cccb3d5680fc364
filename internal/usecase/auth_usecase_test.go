package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/pkg/errors"
	"github.com/innovation-atlas/internal/pkg/jwt"
	"github.com/innovation-atlas/internal/pkg/password"
	"github.com/innovation-atlas/internal/usecase"
)

// memorySessions - сессии в памяти, чтобы проверять ротацию целиком
type memorySessions struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*domain.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{byID: map[int64]*domain.Session{}}
}

func (s *memorySessions) Create(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	session.ID = s.nextID
	session.CreatedAt = time.Now()
	cp := *session
	s.byID[session.ID] = &cp
	return nil
}

func (s *memorySessions) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, session := range s.byID {
		if session.Token == token {
			cp := *session
			return &cp, nil
		}
	}
	return nil, errors.ErrRecordNotFound
}

func (s *memorySessions) Rotate(ctx context.Context, oldID int64, next *domain.Session) error {
	s.mu.Lock()
	if _, ok := s.byID[oldID]; !ok {
		s.mu.Unlock()
		return errors.ErrRecordNotFound
	}
	delete(s.byID, oldID)
	s.mu.Unlock()
	return s.Create(ctx, next)
}

func (s *memorySessions) DeleteByUserAndToken(_ context.Context, userID int64, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, session := range s.byID {
		if session.UserID == userID && session.Token == token {
			delete(s.byID, id)
			n++
		}
	}
	return n, nil
}

func (s *memorySessions) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, session := range s.byID {
		if session.IsExpired(now) {
			delete(s.byID, id)
			n++
		}
	}
	return n, nil
}

func (s *memorySessions) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

func testUser(t *testing.T, plain string, active bool) *domain.User {
	t.Helper()
	hash, err := password.Hash(plain)
	require.NoError(t, err)
	return &domain.User{
		ID:           1,
		Email:        "admin@example.kz",
		PasswordHash: &hash,
		Name:         "Администратор",
		Role:         domain.RoleSuperAdmin,
		IsActive:     active,
	}
}

func newTokenManager() *jwt.Manager {
	return jwt.NewManager("access-secret", "refresh-secret", 30*time.Minute, 7*24*time.Hour)
}

func TestAuthUseCase_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		users := &MockUserRepository{}
		sessions := newMemorySessions()
		uc := usecase.NewAuthUseCase(users, sessions, newTokenManager(), 7*24*time.Hour, zap.NewNop())

		user := testUser(t, "secret123", true)
		users.On("GetByEmail", ctx, "admin@example.kz").Return(user, nil)
		users.On("UpdateLastLogin", ctx, int64(1), mock.AnythingOfType("time.Time")).Return(nil)

		resp, err := uc.Login(ctx, "  Admin@Example.KZ ", "secret123")

		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, int64(1800), resp.ExpiresIn)
		assert.NotNil(t, resp.User.LastLoginAt)
		assert.Equal(t, 1, sessions.count())

		session, err := sessions.GetByToken(ctx, resp.RefreshToken)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), session.ExpiresAt, time.Minute)
		users.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(users, newMemorySessions(), newTokenManager(), 0, zap.NewNop())

		users.On("GetByEmail", ctx, "admin@example.kz").Return(testUser(t, "secret123", true), nil)

		_, err := uc.Login(ctx, "admin@example.kz", "wrong")

		assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
		users.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(users, newMemorySessions(), newTokenManager(), 0, zap.NewNop())

		users.On("GetByEmail", ctx, "nobody@example.kz").Return(nil, errors.ErrRecordNotFound)

		_, err := uc.Login(ctx, "nobody@example.kz", "secret123")

		assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
	})

	t.Run("user without password", func(t *testing.T) {
		users := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(users, newMemorySessions(), newTokenManager(), 0, zap.NewNop())

		user := testUser(t, "secret123", true)
		user.PasswordHash = nil
		users.On("GetByEmail", ctx, "admin@example.kz").Return(user, nil)

		_, err := uc.Login(ctx, "admin@example.kz", "secret123")

		assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
	})

	t.Run("deactivated account reported before password check", func(t *testing.T) {
		for _, plain := range []string{"secret123", "wrong"} {
			users := &MockUserRepository{}
			uc := usecase.NewAuthUseCase(users, newMemorySessions(), newTokenManager(), 0, zap.NewNop())
			users.On("GetByEmail", ctx, "admin@example.kz").Return(testUser(t, "secret123", false), nil)

			_, err := uc.Login(ctx, "admin@example.kz", plain)

			assert.True(t, errors.Is(err, errors.ErrAccountDeactivated), plain)
		}
	})
}

func TestAuthUseCase_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("refresh token is single use", func(t *testing.T) {
		users := &MockUserRepository{}
		sessions := newMemorySessions()
		uc := usecase.NewAuthUseCase(users, sessions, newTokenManager(), 0, zap.NewNop())

		user := testUser(t, "secret123", true)
		users.On("GetByEmail", ctx, "admin@example.kz").Return(user, nil)
		users.On("UpdateLastLogin", ctx, int64(1), mock.Anything).Return(nil)
		users.On("GetByID", ctx, int64(1)).Return(user, nil)

		login, err := uc.Login(ctx, "admin@example.kz", "secret123")
		require.NoError(t, err)

		refreshed, err := uc.Refresh(ctx, login.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
		assert.Equal(t, 1, sessions.count())

		_, err = uc.Refresh(ctx, login.RefreshToken)
		assert.True(t, errors.Is(err, errors.ErrInvalidToken))

		_, err = uc.Refresh(ctx, refreshed.RefreshToken)
		assert.NoError(t, err)
	})

	t.Run("expired session rejected and removed", func(t *testing.T) {
		users := &MockUserRepository{}
		sessions := newMemorySessions()
		uc := usecase.NewAuthUseCase(users, sessions, newTokenManager(), 0, zap.NewNop())

		require.NoError(t, sessions.Create(ctx, &domain.Session{
			UserID:    1,
			Token:     "stale-token",
			ExpiresAt: time.Now().Add(-time.Minute),
		}))

		_, err := uc.Refresh(ctx, "stale-token")

		assert.True(t, errors.Is(err, errors.ErrInvalidToken))
		assert.Equal(t, 0, sessions.count())
	})

	t.Run("unknown token", func(t *testing.T) {
		uc := usecase.NewAuthUseCase(&MockUserRepository{}, newMemorySessions(), newTokenManager(), 0, zap.NewNop())

		_, err := uc.Refresh(ctx, "missing")

		assert.True(t, errors.Is(err, errors.ErrInvalidToken))
	})

	t.Run("forged token with live session rejected", func(t *testing.T) {
		sessions := newMemorySessions()
		uc := usecase.NewAuthUseCase(&MockUserRepository{}, sessions, newTokenManager(), 0, zap.NewNop())

		require.NoError(t, sessions.Create(ctx, &domain.Session{
			UserID:    1,
			Token:     "not-a-jwt",
			ExpiresAt: time.Now().Add(time.Hour),
		}))

		_, err := uc.Refresh(ctx, "not-a-jwt")

		assert.True(t, errors.Is(err, errors.ErrInvalidToken))
	})

	t.Run("deactivated user cannot refresh", func(t *testing.T) {
		users := &MockUserRepository{}
		sessions := newMemorySessions()
		tokens := newTokenManager()
		uc := usecase.NewAuthUseCase(users, sessions, tokens, 0, zap.NewNop())

		pair, err := tokens.GenerateTokenPair(domain.TokenClaims{UserID: 1, Email: "admin@example.kz", Role: domain.RoleEditor})
		require.NoError(t, err)
		require.NoError(t, sessions.Create(ctx, &domain.Session{UserID: 1, Token: pair.RefreshToken, ExpiresAt: time.Now().Add(time.Hour)}))
		users.On("GetByID", ctx, int64(1)).Return(testUser(t, "secret123", false), nil)

		_, err = uc.Refresh(ctx, pair.RefreshToken)

		assert.True(t, errors.Is(err, errors.ErrAccountDeactivated))
	})
}

func TestAuthUseCase_Logout(t *testing.T) {
	ctx := context.Background()
	sessions := &MockSessionRepository{}
	uc := usecase.NewAuthUseCase(&MockUserRepository{}, sessions, &MockTokenManager{}, 0, zap.NewNop())

	sessions.On("DeleteByUserAndToken", ctx, int64(1), "token").Return(int64(1), nil).Once()
	sessions.On("DeleteByUserAndToken", ctx, int64(1), "token").Return(int64(0), nil).Once()

	assert.NoError(t, uc.Logout(ctx, 1, "token"))
	assert.NoError(t, uc.Logout(ctx, 1, "token"))
	sessions.AssertExpectations(t)
}

func TestAuthUseCase_Me(t *testing.T) {
	ctx := context.Background()
	users := &MockUserRepository{}
	uc := usecase.NewAuthUseCase(users, &MockSessionRepository{}, &MockTokenManager{}, 0, zap.NewNop())

	users.On("GetByID", ctx, int64(1)).Return(testUser(t, "secret123", true), nil)
	users.On("GetByID", ctx, int64(2)).Return(nil, errors.ErrRecordNotFound)

	user, err := uc.Me(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.kz", user.Email)

	_, err = uc.Me(ctx, 2)
	assert.True(t, errors.Is(err, errors.ErrInvalidToken))
}

func TestAuthUseCase_EnsureSuperAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("skipped without credentials", func(t *testing.T) {
		users := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(users, &MockSessionRepository{}, &MockTokenManager{}, 0, zap.NewNop())

		assert.NoError(t, uc.EnsureSuperAdmin(ctx, "", "", "Админ"))
		users.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
	})

	t.Run("creates super admin with hashed password", func(t *testing.T) {
		users := &MockUserRepository{}
		uc := usecase.NewAuthUseCase(users, &MockSessionRepository{}, &MockTokenManager{}, 0, zap.NewNop())

		users.On("CreateIfAbsent", ctx, mock.MatchedBy(func(u *domain.User) bool {
			if u.Email != "root@example.kz" || u.Role != domain.RoleSuperAdmin || !u.IsActive || !u.HasPassword() {
				return false
			}
			ok, err := password.Verify(*u.PasswordHash, "changeme")
			return err == nil && ok
		})).Return(&domain.User{ID: 1, Email: "root@example.kz"}, true, nil)

		assert.NoError(t, uc.EnsureSuperAdmin(ctx, "Root@Example.kz", "changeme", "Админ"))
		users.AssertExpectations(t)
	})
}

func TestAuthUseCase_PurgeExpiredSessions(t *testing.T) {
	ctx := context.Background()
	sessions := &MockSessionRepository{}
	uc := usecase.NewAuthUseCase(&MockUserRepository{}, sessions, &MockTokenManager{}, 0, zap.NewNop())

	sessions.On("DeleteExpired", ctx, mock.AnythingOfType("time.Time")).Return(int64(4), nil)

	n, err := uc.PurgeExpiredSessions(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
