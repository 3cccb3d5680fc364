package postgres

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/domain/repository"
	apperrors "github.com/innovation-atlas/internal/pkg/errors"
)

const userColumns = `id, email, password, name, role, is_active, last_login_at, created_at, updated_at`

type userRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewUserRepository создает новый экземпляр UserRepository
func NewUserRepository(db *DB, logger *zap.Logger) repository.UserRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`,
		strings.TrimSpace(email))
	if err != nil {
		return nil, r.notFoundOrLog(err, "Failed to get user by email")
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, r.notFoundOrLog(err, "Failed to get user by id")
	}
	return &user, nil
}

func (r *userRepository) notFoundOrLog(err error, msg string) error {
	mapped := mapError(err)
	if !apperrors.Is(mapped, apperrors.ErrRecordNotFound) {
		r.logger.Error(msg, zap.Error(err))
	}
	return mapped
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = $1, updated_at = NOW() WHERE id = $2`, at, id)
	if err != nil {
		r.logger.Error("Failed to update last login", zap.Int64("user_id", id), zap.Error(err))
		return mapError(err)
	}
	return nil
}

func (r *userRepository) CreateIfAbsent(ctx context.Context, user *domain.User) (*domain.User, bool, error) {
	var created domain.User
	err := r.db.GetContext(ctx, &created, `
		INSERT INTO users (email, password, name, role, is_active)
		VALUES (LOWER($1), $2, $3, $4, $5)
		ON CONFLICT ((LOWER(email))) DO NOTHING
		RETURNING `+userColumns,
		strings.TrimSpace(user.Email), user.PasswordHash, user.Name, string(user.Role), user.IsActive)
	if err == nil {
		return &created, true, nil
	}

	if !apperrors.Is(mapError(err), apperrors.ErrRecordNotFound) {
		r.logger.Error("Failed to create user", zap.String("email", user.Email), zap.Error(err))
		return nil, false, mapError(err)
	}

	// конфликт: пользователь уже есть
	existing, err := r.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}
