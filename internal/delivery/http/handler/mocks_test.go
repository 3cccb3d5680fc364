package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/usecase/dto"
)

type MockObjectService struct {
	mock.Mock
}

func (m *MockObjectService) List(ctx context.Context, filter domain.ObjectFilter) ([]dto.ObjectResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ObjectResponse), args.Error(1)
}

func (m *MockObjectService) GetByID(ctx context.Context, id int64, lang domain.Language) (*dto.ObjectResponse, error) {
	args := m.Called(ctx, id, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ObjectResponse), args.Error(1)
}

func (m *MockObjectService) Create(ctx context.Context, req dto.CreateObjectRequest, lang domain.Language) (*dto.ObjectResponse, error) {
	args := m.Called(ctx, req, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ObjectResponse), args.Error(1)
}

func (m *MockObjectService) Update(ctx context.Context, id int64, req dto.UpdateObjectRequest, lang domain.Language) (*dto.ObjectResponse, error) {
	args := m.Called(ctx, id, req, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ObjectResponse), args.Error(1)
}

func (m *MockObjectService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockObjectService) Bulk(ctx context.Context, req dto.BulkOperationRequest) (*dto.BulkOperationResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BulkOperationResponse), args.Error(1)
}

func (m *MockObjectService) Export(ctx context.Context, filter domain.ObjectFilter) ([]byte, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockDictionaryService struct {
	mock.Mock
}

func (m *MockDictionaryService) InfrastructureTypes(ctx context.Context, lang domain.Language, includeInactive bool) ([]domain.InfrastructureType, error) {
	args := m.Called(ctx, lang, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InfrastructureType), args.Error(1)
}

func (m *MockDictionaryService) Regions(ctx context.Context, lang domain.Language) ([]domain.Region, error) {
	args := m.Called(ctx, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Region), args.Error(1)
}

func (m *MockDictionaryService) PriorityDirections(ctx context.Context, includeInactive bool) ([]domain.PriorityDirection, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PriorityDirection), args.Error(1)
}

func (m *MockDictionaryService) Search(ctx context.Context, query string, lang domain.Language) (*domain.DictionarySearchResult, error) {
	args := m.Called(ctx, query, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DictionarySearchResult), args.Error(1)
}

func (m *MockDictionaryService) FindOrCreatePriorityDirection(ctx context.Context, name string) (*dto.FindOrCreatePriorityDirectionResponse, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FindOrCreatePriorityDirectionResponse), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, userID int64, refreshToken string) error {
	args := m.Called(ctx, userID, refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type envelope struct {
	Success bool                   `json:"success"`
	Data    json.RawMessage        `json:"data"`
	Count   *int                   `json:"count"`
	Message string                 `json:"message"`
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details"`
}

// do выполняет запрос к app и разбирает конверт ответа
func do(t *testing.T, app *fiber.App, method, target, body string) (int, envelope) {
	t.Helper()
	return send(t, app, newRequest(method, target, body))
}

func newRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return req
}

func send(t *testing.T, app *fiber.App, req *http.Request) (int, envelope) {
	t.Helper()

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}
