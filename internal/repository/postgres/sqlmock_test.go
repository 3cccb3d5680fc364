package postgres_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/repository/postgres"
)

// setupMockDB создаёт postgres.DB поверх sqlmock
func setupMockDB(t *testing.T) (*postgres.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return postgres.NewDBForTest(sqlx.NewDb(mockDB, "postgres"), zap.NewNop()), mock
}
