package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/domain/repository"
	"github.com/innovation-atlas/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

func NewObjectRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ObjectRepository {
	return postgres.NewObjectRepository(NewDBForTest(db, logger), logger)
}

func NewDictionaryRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.DictionaryRepository {
	return postgres.NewDictionaryRepository(NewDBForTest(db, logger), logger)
}

func NewUserRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.UserRepository {
	return postgres.NewUserRepository(NewDBForTest(db, logger), logger)
}

func NewSessionRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.SessionRepository {
	return postgres.NewSessionRepository(NewDBForTest(db, logger), logger)
}
