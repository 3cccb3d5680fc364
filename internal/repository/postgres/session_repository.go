package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/domain/repository"
	apperrors "github.com/innovation-atlas/internal/pkg/errors"
)

type sessionRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewSessionRepository создает новый экземпляр SessionRepository
func NewSessionRepository(db *DB, logger *zap.Logger) repository.SessionRepository {
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if err := insertSession(ctx, r.db, session); err != nil {
		r.logger.Error("Failed to create session", zap.Int64("user_id", session.UserID), zap.Error(err))
		return mapError(err)
	}
	return nil
}

func insertSession(ctx context.Context, q sqlx.QueryerContext, session *domain.Session) error {
	return q.QueryRowxContext(ctx, `
		INSERT INTO sessions (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		session.UserID, session.Token, session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt)
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.GetContext(ctx, &session, `
		SELECT id, user_id, token, expires_at, created_at
		FROM sessions
		WHERE token = $1`, token)
	if err != nil {
		mapped := mapError(err)
		if !apperrors.Is(mapped, apperrors.ErrRecordNotFound) {
			r.logger.Error("Failed to get session", zap.Error(err))
		}
		return nil, mapped
	}
	return &session, nil
}

func (r *sessionRepository) Rotate(ctx context.Context, oldID int64, next *domain.Session) error {
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, oldID)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperrors.ErrRecordNotFound
		}
		return insertSession(ctx, tx, next)
	})
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrRecordNotFound) {
			r.logger.Error("Failed to rotate session", zap.Int64("session_id", oldID), zap.Error(err))
		}
		return mapError(err)
	}
	return nil
}

func (r *sessionRepository) DeleteByUserAndToken(ctx context.Context, userID int64, token string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE user_id = $1 AND token = $2`, userID, token)
	if err != nil {
		r.logger.Error("Failed to delete session", zap.Int64("user_id", userID), zap.Error(err))
		return 0, mapError(err)
	}
	return result.RowsAffected()
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		r.logger.Error("Failed to delete expired sessions", zap.Error(err))
		return 0, mapError(err)
	}
	return result.RowsAffected()
}
