package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/domain/repository"
	"github.com/innovation-atlas/internal/pkg/errors"
	"github.com/innovation-atlas/internal/pkg/jwt"
	"github.com/innovation-atlas/internal/pkg/password"
	"github.com/innovation-atlas/internal/usecase/dto"
)

// TokenManager выпускает и проверяет пары токенов
type TokenManager interface {
	GenerateTokenPair(claims domain.TokenClaims) (*jwt.TokenPair, error)
	ValidateRefreshToken(token string) (*domain.TokenClaims, error)
}

// AuthUseCase - вход, выход и ротация refresh токенов
type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	tokens      TokenManager
	sessionTTL  time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	tokens TokenManager,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *AuthUseCase {
	if sessionTTL == 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return &AuthUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		sessionTTL:  sessionTTL,
		logger:      logger,
		now:         time.Now,
	}
}

// Login проверяет учётные данные и открывает новую сессию.
// Деактивированный аккаунт проверяется раньше пароля.
func (uc *AuthUseCase) Login(ctx context.Context, email, plain string) (*dto.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errors.ErrRecordNotFound) {
			uc.logger.Info("Login failed: unknown email")
			return nil, errors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		uc.logger.Info("Login failed: account deactivated", zap.Int64("user_id", user.ID))
		return nil, errors.ErrAccountDeactivated
	}

	if !user.HasPassword() {
		return nil, errors.ErrInvalidCredentials
	}
	ok, err := password.Verify(*user.PasswordHash, plain)
	if err != nil {
		uc.logger.Warn("Password verification failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, errors.ErrInvalidCredentials
	}
	if !ok {
		uc.logger.Info("Login failed: wrong password", zap.Int64("user_id", user.ID))
		return nil, errors.ErrInvalidCredentials
	}

	now := uc.now()
	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	pair, err := uc.tokens.GenerateTokenPair(claimsOf(user))
	if err != nil {
		return nil, errors.ErrInternalServer.Wrap(err)
	}

	session := &domain.Session{
		UserID:    user.ID,
		Token:     pair.RefreshToken,
		ExpiresAt: now.Add(uc.sessionTTL),
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		uc.logger.Error("Failed to create session", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("User logged in", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))

	return authResponse(pair, user), nil
}

// Logout удаляет сессию пользователя. Повторный вызов не ошибка.
func (uc *AuthUseCase) Logout(ctx context.Context, userID int64, refreshToken string) error {
	deleted, err := uc.sessionRepo.DeleteByUserAndToken(ctx, userID, refreshToken)
	if err != nil {
		return err
	}

	uc.logger.Info("User logged out", zap.Int64("user_id", userID), zap.Int64("sessions_deleted", deleted))
	return nil
}

// Refresh обменивает refresh токен на новую пару. Старый токен одноразовый.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	session, err := uc.sessionRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, errors.ErrRecordNotFound) {
			return nil, errors.ErrInvalidToken
		}
		return nil, err
	}

	now := uc.now()
	if session.IsExpired(now) {
		if _, err := uc.sessionRepo.DeleteByUserAndToken(ctx, session.UserID, session.Token); err != nil {
			uc.logger.Warn("Failed to delete expired session", zap.Int64("session_id", session.ID), zap.Error(err))
		}
		return nil, errors.ErrInvalidToken
	}

	claims, err := uc.tokens.ValidateRefreshToken(refreshToken)
	if err != nil || claims.UserID != session.UserID {
		return nil, errors.ErrInvalidToken
	}

	user, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, errors.ErrRecordNotFound) {
			return nil, errors.ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errors.ErrAccountDeactivated
	}

	pair, err := uc.tokens.GenerateTokenPair(claimsOf(user))
	if err != nil {
		return nil, errors.ErrInternalServer.Wrap(err)
	}

	next := &domain.Session{
		UserID:    user.ID,
		Token:     pair.RefreshToken,
		ExpiresAt: now.Add(uc.sessionTTL),
	}
	if err := uc.sessionRepo.Rotate(ctx, session.ID, next); err != nil {
		if errors.Is(err, errors.ErrRecordNotFound) {
			// параллельный запрос уже использовал этот токен
			return nil, errors.ErrInvalidToken
		}
		return nil, err
	}

	uc.logger.Debug("Session rotated", zap.Int64("user_id", user.ID), zap.Int64("session_id", next.ID))

	return authResponse(pair, user), nil
}

// Me возвращает профиль текущего пользователя
func (uc *AuthUseCase) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errors.ErrRecordNotFound) {
			return nil, errors.ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errors.ErrAccountDeactivated
	}
	return user, nil
}

// EnsureSuperAdmin создаёт администратора из конфигурации, если пользователя с таким email нет
func (uc *AuthUseCase) EnsureSuperAdmin(ctx context.Context, email, plain, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || plain == "" {
		uc.logger.Debug("Super admin bootstrap skipped: credentials not configured")
		return nil
	}

	hash, err := password.Hash(plain)
	if err != nil {
		return errors.ErrInternalServer.Wrap(err)
	}

	user, created, err := uc.userRepo.CreateIfAbsent(ctx, &domain.User{
		Email:        email,
		PasswordHash: &hash,
		Name:         name,
		Role:         domain.RoleSuperAdmin,
		IsActive:     true,
	})
	if err != nil {
		return err
	}

	if created {
		uc.logger.Info("Super admin created", zap.Int64("user_id", user.ID), zap.String("email", user.Email))
	} else {
		uc.logger.Debug("Super admin already exists", zap.Int64("user_id", user.ID))
	}
	return nil
}

// PurgeExpiredSessions удаляет истёкшие сессии, возвращает их число
func (uc *AuthUseCase) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	deleted, err := uc.sessionRepo.DeleteExpired(ctx, uc.now())
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		uc.logger.Info("Expired sessions purged", zap.Int64("count", deleted))
	}
	return deleted, nil
}

func claimsOf(user *domain.User) domain.TokenClaims {
	return domain.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}
}

func authResponse(pair *jwt.TokenPair, user *domain.User) *dto.AuthResponse {
	return &dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		User:         user,
	}
}
