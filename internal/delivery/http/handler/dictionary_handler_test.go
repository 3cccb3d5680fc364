package handler_test

import (
	"encoding/json"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/delivery/http/handler"
	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/pkg/errors"
	"github.com/innovation-atlas/internal/usecase/dto"
)

func newDictionaryApp(svc *MockDictionaryService) *fiber.App {
	h := handler.NewDictionaryHandler(svc, zap.NewNop())
	app := fiber.New()
	app.Get("/dictionaries/infrastructure-types", h.InfrastructureTypes)
	app.Get("/dictionaries/regions", h.Regions)
	app.Get("/dictionaries/priority-directions", h.PriorityDirections)
	app.Get("/dictionaries/search", h.Search)
	app.Post("/dictionaries/priority-directions", h.FindOrCreatePriorityDirection)
	return app
}

func TestDictionaryHandler_InfrastructureTypes(t *testing.T) {
	svc := &MockDictionaryService{}
	svc.On("InfrastructureTypes", mock.Anything, domain.LanguageEN, true).Return([]domain.InfrastructureType{
		{ID: 1, Name: "Technopark", IsActive: true},
		{ID: 2, Name: "Business incubator"},
	}, nil)

	status, body := do(t, newDictionaryApp(svc), fiber.MethodGet, "/dictionaries/infrastructure-types?lang=en&includeInactive=true", "")

	assert.Equal(t, fiber.StatusOK, status)
	require.NotNil(t, body.Count)
	assert.Equal(t, 2, *body.Count)
	svc.AssertExpectations(t)
}

func TestDictionaryHandler_Regions(t *testing.T) {
	t.Run("default language", func(t *testing.T) {
		svc := &MockDictionaryService{}
		svc.On("Regions", mock.Anything, domain.LanguageRU).Return([]domain.Region{{ID: 1, Name: "Алматы"}}, nil)

		status, _ := do(t, newDictionaryApp(svc), fiber.MethodGet, "/dictionaries/regions", "")

		assert.Equal(t, fiber.StatusOK, status)
		svc.AssertExpectations(t)
	})

	t.Run("repository failure", func(t *testing.T) {
		svc := &MockDictionaryService{}
		svc.On("Regions", mock.Anything, domain.LanguageKZ).Return(nil, errors.ErrDatabaseError)

		status, body := do(t, newDictionaryApp(svc), fiber.MethodGet, "/dictionaries/regions?lang=kz", "")

		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Equal(t, errors.ErrDatabaseError.Code, body.Code)
	})
}

func TestDictionaryHandler_PriorityDirections(t *testing.T) {
	svc := &MockDictionaryService{}
	svc.On("PriorityDirections", mock.Anything, false).Return([]domain.PriorityDirection{}, nil)

	status, body := do(t, newDictionaryApp(svc), fiber.MethodGet, "/dictionaries/priority-directions", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body.Data))
}

func TestDictionaryHandler_Search(t *testing.T) {
	svc := &MockDictionaryService{}
	result := domain.EmptyDictionarySearchResult()
	result.Regions = []domain.DictionaryHit{{ID: 3, Type: domain.DictionaryHitRegion, Name: "Алматы"}}
	svc.On("Search", mock.Anything, "алм", domain.LanguageRU).Return(result, nil)

	status, body := do(t, newDictionaryApp(svc), fiber.MethodGet, "/dictionaries/search?q=%D0%B0%D0%BB%D0%BC", "")

	assert.Equal(t, fiber.StatusOK, status)
	var got domain.DictionarySearchResult
	require.NoError(t, json.Unmarshal(body.Data, &got))
	assert.Len(t, got.Regions, 1)
	assert.Empty(t, got.InfrastructureTypes)
}

func TestDictionaryHandler_FindOrCreatePriorityDirection(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &MockDictionaryService{}
		svc.On("FindOrCreatePriorityDirection", mock.Anything, "Агротех").
			Return(&dto.FindOrCreatePriorityDirectionResponse{ID: 12, Name: "Агротех", Created: true}, nil)

		status, body := do(t, newDictionaryApp(svc), fiber.MethodPost, "/dictionaries/priority-directions", `{"name":"Агротех"}`)

		assert.Equal(t, fiber.StatusCreated, status)
		assert.True(t, body.Success)
	})

	t.Run("existing", func(t *testing.T) {
		svc := &MockDictionaryService{}
		svc.On("FindOrCreatePriorityDirection", mock.Anything, "агротех").
			Return(&dto.FindOrCreatePriorityDirectionResponse{ID: 12, Name: "Агротех"}, nil)

		status, _ := do(t, newDictionaryApp(svc), fiber.MethodPost, "/dictionaries/priority-directions", `{"name":"агротех"}`)

		assert.Equal(t, fiber.StatusOK, status)
	})

	t.Run("missing name", func(t *testing.T) {
		svc := &MockDictionaryService{}

		status, body := do(t, newDictionaryApp(svc), fiber.MethodPost, "/dictionaries/priority-directions", `{}`)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "is required", body.Details["name"])
		svc.AssertNotCalled(t, "FindOrCreatePriorityDirection", mock.Anything, mock.Anything)
	})
}
