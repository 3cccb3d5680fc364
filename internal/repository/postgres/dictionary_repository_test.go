package postgres_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/domain/repository"
	"github.com/innovation-atlas/internal/repository/postgres"
)

func setupDictionaryRepo(t *testing.T) (repository.DictionaryRepository, sqlmock.Sqlmock) {
	db, mock := setupMockDB(t)
	return postgres.NewDictionaryRepository(db, zap.NewNop()), mock
}

func TestDictionaryRepository_ListInfrastructureTypes(t *testing.T) {
	repo, mock := setupDictionaryRepo(t)

	rows := sqlmock.NewRows([]string{"id", "icon", "color", "sort_order", "is_active", "name", "objects_count"}).
		AddRow(1, "building", "#111", 1, true, "Технопарк", 3).
		AddRow(2, "rocket", "#222", 2, true, "", 0)
	mock.ExpectQuery("FROM infrastructure_types it").
		WithArgs("ru", false).
		WillReturnRows(rows)

	types, err := repo.ListInfrastructureTypes(context.Background(), domain.LanguageRU, false)

	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "Технопарк", types[0].Name)
	assert.Equal(t, 3, types[0].ObjectsCount)
	assert.Equal(t, "", types[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDictionaryRepository_ListRegions_BuildsOneLevelTree(t *testing.T) {
	repo, mock := setupDictionaryRepo(t)

	rows := sqlmock.NewRows([]string{"id", "code", "parent_id", "name", "objects_count"}).
		AddRow(1, "ALA", nil, "Алматы", 2).
		AddRow(2, "AST", nil, "Астана", 1).
		AddRow(3, nil, 1, "Медеуский район", 1).
		AddRow(4, nil, 1, "Бостандыкский район", 0)
	mock.ExpectQuery("FROM regions r").
		WithArgs("ru").
		WillReturnRows(rows)

	regions, err := repo.ListRegions(context.Background(), domain.LanguageRU)

	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Equal(t, int64(1), regions[0].ID)
	require.Len(t, regions[0].Children, 2)
	assert.Equal(t, "Медеуский район", regions[0].Children[0].Name)
	assert.NotNil(t, regions[1].Children)
	assert.Empty(t, regions[1].Children)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDictionaryRepository_SearchSetsHitType(t *testing.T) {
	repo, mock := setupDictionaryRepo(t)

	mock.ExpectQuery("FROM infrastructure_types it").
		WithArgs("ru", "%техно%", domain.DictionarySearchLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "icon", "color"}).
			AddRow(1, "Технопарк", "building", "#111"))

	hits, err := repo.SearchInfrastructureTypes(context.Background(), "техно", domain.LanguageRU, domain.DictionarySearchLimit)

	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, domain.DictionaryHitInfrastructureType, hits[0].Type)
	require.NotNil(t, hits[0].Icon)
	assert.Equal(t, "building", *hits[0].Icon)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDictionaryRepository_FindPriorityDirectionByName(t *testing.T) {
	t.Run("case-insensitive match", func(t *testing.T) {
		repo, mock := setupDictionaryRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(name) = LOWER($1)")).
			WithArgs("Искусственный интеллект").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "sort_order", "is_active"}).
				AddRow(7, "искусственный интеллект", 0, true))

		direction, err := repo.FindPriorityDirectionByName(context.Background(), "  Искусственный интеллект ")

		require.NoError(t, err)
		require.NotNil(t, direction)
		assert.Equal(t, int64(7), direction.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := setupDictionaryRepo(t)
		mock.ExpectQuery("FROM priority_directions").
			WillReturnError(sql.ErrNoRows)

		direction, err := repo.FindPriorityDirectionByName(context.Background(), "Квант")

		require.NoError(t, err)
		assert.Nil(t, direction)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDictionaryRepository_CreatePriorityDirection(t *testing.T) {
	repo, mock := setupDictionaryRepo(t)

	mock.ExpectQuery("INSERT INTO priority_directions").
		WithArgs("Агротех").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "sort_order", "is_active"}).
			AddRow(15, "Агротех", 0, true))

	direction, err := repo.CreatePriorityDirection(context.Background(), "Агротех")

	require.NoError(t, err)
	assert.Equal(t, int64(15), direction.ID)
	assert.True(t, direction.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}
