package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/pkg/jwt"
)

// MockObjectRepository - мок для ObjectRepository
type MockObjectRepository struct {
	mock.Mock
}

func (m *MockObjectRepository) List(ctx context.Context, filter domain.ObjectFilter) ([]*domain.LocalizedObject, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LocalizedObject), args.Error(1)
}

func (m *MockObjectRepository) GetLocalized(ctx context.Context, id int64, lang domain.Language) (*domain.LocalizedObject, error) {
	args := m.Called(ctx, id, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LocalizedObject), args.Error(1)
}

func (m *MockObjectRepository) GetByID(ctx context.Context, id int64) (*domain.Object, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Object), args.Error(1)
}

func (m *MockObjectRepository) Create(ctx context.Context, obj *domain.Object) (int64, error) {
	args := m.Called(ctx, obj)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockObjectRepository) Update(ctx context.Context, id int64, patch domain.ObjectPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockObjectRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockObjectRepository) SetPublished(ctx context.Context, ids []int64, lang domain.Language, isPublished bool) (int64, error) {
	args := m.Called(ctx, ids, lang, isPublished)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockObjectRepository) UpdateGeocoding(ctx context.Context, id int64, coords *domain.Coordinate, status domain.GeocodingStatus) (bool, error) {
	args := m.Called(ctx, id, coords, status)
	return args.Bool(0), args.Error(1)
}

// MockDictionaryRepository - мок для DictionaryRepository
type MockDictionaryRepository struct {
	mock.Mock
}

func (m *MockDictionaryRepository) ListInfrastructureTypes(ctx context.Context, lang domain.Language, includeInactive bool) ([]domain.InfrastructureType, error) {
	args := m.Called(ctx, lang, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InfrastructureType), args.Error(1)
}

func (m *MockDictionaryRepository) ListRegions(ctx context.Context, lang domain.Language) ([]domain.Region, error) {
	args := m.Called(ctx, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Region), args.Error(1)
}

func (m *MockDictionaryRepository) ListPriorityDirections(ctx context.Context, includeInactive bool) ([]domain.PriorityDirection, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PriorityDirection), args.Error(1)
}

func (m *MockDictionaryRepository) SearchInfrastructureTypes(ctx context.Context, query string, lang domain.Language, limit int) ([]domain.DictionaryHit, error) {
	args := m.Called(ctx, query, lang, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DictionaryHit), args.Error(1)
}

func (m *MockDictionaryRepository) SearchRegions(ctx context.Context, query string, lang domain.Language, limit int) ([]domain.DictionaryHit, error) {
	args := m.Called(ctx, query, lang, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DictionaryHit), args.Error(1)
}

func (m *MockDictionaryRepository) SearchPriorityDirections(ctx context.Context, query string, limit int) ([]domain.DictionaryHit, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DictionaryHit), args.Error(1)
}

func (m *MockDictionaryRepository) FindPriorityDirectionByName(ctx context.Context, name string) (*domain.PriorityDirection, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriorityDirection), args.Error(1)
}

func (m *MockDictionaryRepository) CreatePriorityDirection(ctx context.Context, name string) (*domain.PriorityDirection, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriorityDirection), args.Error(1)
}

// MockUserRepository - мок для UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepository) CreateIfAbsent(ctx context.Context, user *domain.User) (*domain.User, bool, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Bool(1), args.Error(2)
}

// MockSessionRepository - мок для SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) Rotate(ctx context.Context, oldID int64, next *domain.Session) error {
	args := m.Called(ctx, oldID, next)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteByUserAndToken(ctx context.Context, userID int64, token string) (int64, error) {
	args := m.Called(ctx, userID, token)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockCacheRepository - мок для CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int64), args.Error(1)
}

// MockStreamRepository - мок для StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int64, block time.Duration) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count, block)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) ClaimStale(ctx context.Context, stream, group, consumer string, minIdle time.Duration, count int64) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, minIdle, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs ...string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockGeocoderRepository - мок для GeocoderRepository
type MockGeocoderRepository struct {
	mock.Mock
}

func (m *MockGeocoderRepository) Geocode(ctx context.Context, query string, lang domain.Language) (*domain.GeocodeResult, error) {
	args := m.Called(ctx, query, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodeResult), args.Error(1)
}

// MockTokenManager - мок выпуска токенов
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateTokenPair(claims domain.TokenClaims) (*jwt.TokenPair, error) {
	args := m.Called(claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.TokenPair), args.Error(1)
}

func (m *MockTokenManager) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenClaims), args.Error(1)
}
