package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/domain/repository"
	apperrors "github.com/innovation-atlas/internal/pkg/errors"
	"github.com/innovation-atlas/internal/repository/postgres/testhelpers"
)

// RepositoryIntegrationSuite проверяет SQL на настоящем PostgreSQL
type RepositoryIntegrationSuite struct {
	suite.Suite
	testDB       *testhelpers.TestDB
	objects      repository.ObjectRepository
	dictionaries repository.DictionaryRepository
	users        repository.UserRepository
	sessions     repository.SessionRepository
	ctx          context.Context
}

func TestRepositoryIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(RepositoryIntegrationSuite))
}

func (s *RepositoryIntegrationSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations")
	s.Require().NoError(err, "Failed to apply migrations")

	s.objects = testhelpers.NewObjectRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.dictionaries = testhelpers.NewDictionaryRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.users = testhelpers.NewUserRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.sessions = testhelpers.NewSessionRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

func (s *RepositoryIntegrationSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

// SetupTest перезагружает фикстуры перед каждым тестом
func (s *RepositoryIntegrationSuite) SetupTest() {
	s.ctx = context.Background()

	s.Require().NoError(s.testDB.Cleanup(s.ctx))
	err := testhelpers.LoadFixtures(s.testDB.DB.DB, "testdata/fixtures", []string{
		"dictionaries.sql",
		"objects.sql",
	})
	s.Require().NoError(err, "Failed to load fixtures")
}

func (s *RepositoryIntegrationSuite) TestList_ExcludesObjectsWithoutTranslation() {
	objects, err := s.objects.List(s.ctx, domain.ObjectFilter{Lang: domain.LanguageRU})
	s.Require().NoError(err)
	s.Require().Len(objects, 1)
	s.Equal("Технопарк Алатау", objects[0].Name)

	objects, err = s.objects.List(s.ctx, domain.ObjectFilter{Lang: domain.LanguageKZ})
	s.Require().NoError(err)
	s.Require().Len(objects, 1)
	s.Equal("Астана Хаб", objects[0].Name)
}

func (s *RepositoryIntegrationSuite) TestList_CaseInsensitiveSearchWithChildren() {
	objects, err := s.objects.List(s.ctx, domain.ObjectFilter{Lang: domain.LanguageRU, Search: "ТЕХНО"})
	s.Require().NoError(err)
	s.Require().Len(objects, 1)

	obj := objects[0]
	s.Equal("Технопарк", obj.InfrastructureType.Name)
	s.Equal("Алматы", obj.Region.Name)
	s.Require().Len(obj.Phones, 2)
	s.Equal(domain.PhoneMain, obj.Phones[0].Type)
	s.Len(obj.Organizations, 1)
	s.Len(obj.PriorityDirections, 1)
}

func (s *RepositoryIntegrationSuite) TestList_SearchAndPublishedBothApply() {
	published := false
	objects, err := s.objects.List(s.ctx, domain.ObjectFilter{
		Lang:        domain.LanguageEN,
		Search:      "alatau",
		IsPublished: &published,
	})
	s.Require().NoError(err)
	s.Len(objects, 1)

	published = true
	objects, err = s.objects.List(s.ctx, domain.ObjectFilter{
		Lang:        domain.LanguageEN,
		Search:      "alatau",
		IsPublished: &published,
	})
	s.Require().NoError(err)
	s.Empty(objects)
}

func (s *RepositoryIntegrationSuite) TestCreateUpdateDelete() {
	typeID, err := testhelpers.GetInfrastructureTypeIDByIcon(s.testDB.DB.DB, "incubator")
	s.Require().NoError(err)
	regionID, err := testhelpers.GetRegionIDByCode(s.testDB.DB.DB, "AST")
	s.Require().NoError(err)

	id, err := s.objects.Create(s.ctx, &domain.Object{
		InfrastructureTypeID: typeID,
		RegionID:             regionID,
		GeocodingStatus:      domain.GeocodingPending,
		Translations: []domain.ObjectTranslation{
			{LanguageCode: domain.LanguageRU, Name: "Инкубатор", Address: "Астана", IsPublished: true},
		},
		Phones: []domain.Phone{{Number: "+7 1", Type: domain.PhoneMain}},
	})
	s.Require().NoError(err)

	translations := []domain.ObjectTranslation{
		{LanguageCode: domain.LanguageEN, Name: "Incubator", Address: "Astana", IsPublished: true},
	}
	s.Require().NoError(s.objects.Update(s.ctx, id, domain.ObjectPatch{Translations: &translations}))

	obj, err := s.objects.GetByID(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(obj.Translations, 1)
	s.Equal(domain.LanguageEN, obj.Translations[0].LanguageCode)
	s.Len(obj.Phones, 1)

	_, err = s.objects.GetLocalized(s.ctx, id, domain.LanguageRU)
	s.ErrorIs(err, apperrors.ErrObjectNotFound)

	s.Require().NoError(s.objects.Delete(s.ctx, id))
	s.ErrorIs(s.objects.Delete(s.ctx, id), apperrors.ErrObjectNotFound)
}

func (s *RepositoryIntegrationSuite) TestSetPublished_CountsOnlyRequestedLanguage() {
	count, err := s.objects.SetPublished(s.ctx, []int64{1, 2, 999}, domain.LanguageRU, false)
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *RepositoryIntegrationSuite) TestUpdateGeocoding_KeepsManualCoordinates() {
	updated, err := s.objects.UpdateGeocoding(s.ctx, 1, &domain.Coordinate{Lat: 1, Lon: 1}, domain.GeocodingSuccess)
	s.Require().NoError(err)
	s.False(updated)

	updated, err = s.objects.UpdateGeocoding(s.ctx, 2, &domain.Coordinate{Lat: 51.09, Lon: 71.41}, domain.GeocodingSuccess)
	s.Require().NoError(err)
	s.True(updated)
}

func (s *RepositoryIntegrationSuite) TestDictionaries() {
	types, err := s.dictionaries.ListInfrastructureTypes(s.ctx, domain.LanguageEN, false)
	s.Require().NoError(err)
	s.Require().Len(types, 2)
	s.Equal("Technopark", types[0].Name)
	s.Equal(1, types[0].ObjectsCount)
	s.Equal("", types[1].Name)

	regions, err := s.dictionaries.ListRegions(s.ctx, domain.LanguageRU)
	s.Require().NoError(err)
	s.Require().Len(regions, 2)
	s.Len(regions[0].Children, 1)

	hits, err := s.dictionaries.SearchPriorityDirections(s.ctx, "интел", domain.DictionarySearchLimit)
	s.Require().NoError(err)
	s.Len(hits, 1)

	existing, err := s.dictionaries.FindPriorityDirectionByName(s.ctx, "АГРОТЕХ")
	s.Require().NoError(err)
	s.Require().NotNil(existing)

	created, err := s.dictionaries.CreatePriorityDirection(s.ctx, "Финтех")
	s.Require().NoError(err)
	again, err := s.dictionaries.CreatePriorityDirection(s.ctx, "финтех")
	s.Require().NoError(err)
	s.Equal(created.ID, again.ID)
}

func (s *RepositoryIntegrationSuite) TestUsersAndSessions() {
	hash := "$2a$10$abcdefghijklmnopqrstuv"
	user, created, err := s.users.CreateIfAbsent(s.ctx, &domain.User{
		Email: "Admin@Example.kz", PasswordHash: &hash, Name: "Админ", Role: domain.RoleSuperAdmin, IsActive: true,
	})
	s.Require().NoError(err)
	s.True(created)
	s.Equal("admin@example.kz", user.Email)

	_, created, err = s.users.CreateIfAbsent(s.ctx, &domain.User{Email: "ADMIN@example.kz", Role: domain.RoleEditor, IsActive: true})
	s.Require().NoError(err)
	s.False(created)

	session := &domain.Session{UserID: user.ID, Token: "token-1", ExpiresAt: time.Now().Add(time.Hour)}
	s.Require().NoError(s.sessions.Create(s.ctx, session))

	next := &domain.Session{UserID: user.ID, Token: "token-2", ExpiresAt: time.Now().Add(time.Hour)}
	s.Require().NoError(s.sessions.Rotate(s.ctx, session.ID, next))
	s.ErrorIs(s.sessions.Rotate(s.ctx, session.ID, &domain.Session{UserID: user.ID, Token: "token-3", ExpiresAt: time.Now()}), apperrors.ErrRecordNotFound)

	deleted, err := s.sessions.DeleteExpired(s.ctx, time.Now().Add(2*time.Hour))
	s.Require().NoError(err)
	s.Equal(int64(1), deleted)
}
