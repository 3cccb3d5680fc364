package repository

import (
	"context"
	"time"

	"github.com/innovation-atlas/internal/domain"
)

// UserRepository определяет методы для работы с пользователями панели
type UserRepository interface {
	// GetByEmail ищет пользователя по email без учёта регистра. ErrRecordNotFound, если нет
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByID возвращает пользователя. ErrRecordNotFound, если нет
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// UpdateLastLogin проставляет время последнего входа
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error

	// CreateIfAbsent создаёт пользователя, если пользователя с таким email ещё нет.
	// Возвращает сохранённого пользователя и признак создания
	CreateIfAbsent(ctx context.Context, user *domain.User) (*domain.User, bool, error)
}

// SessionRepository хранит refresh-сессии
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error

	// GetByToken возвращает сессию. ErrRecordNotFound, если нет
	GetByToken(ctx context.Context, token string) (*domain.Session, error)

	// Rotate атомарно удаляет сессию oldID и создаёт next.
	// ErrRecordNotFound, если oldID уже удалена (повторное использование токена)
	Rotate(ctx context.Context, oldID int64, next *domain.Session) error

	// DeleteByUserAndToken удаляет сессию пользователя, возвращает число удалённых
	DeleteByUserAndToken(ctx context.Context, userID int64, token string) (int64, error)

	// DeleteExpired удаляет сессии с истёкшим сроком
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
