package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/pkg/errors"
	"github.com/innovation-atlas/internal/pkg/utils"
	"github.com/innovation-atlas/internal/pkg/validator"
	"github.com/innovation-atlas/internal/usecase/dto"
)

// DictionaryService - чтение справочников и поиск по ним
type DictionaryService interface {
	InfrastructureTypes(ctx context.Context, lang domain.Language, includeInactive bool) ([]domain.InfrastructureType, error)
	Regions(ctx context.Context, lang domain.Language) ([]domain.Region, error)
	PriorityDirections(ctx context.Context, includeInactive bool) ([]domain.PriorityDirection, error)
	Search(ctx context.Context, query string, lang domain.Language) (*domain.DictionarySearchResult, error)
	FindOrCreatePriorityDirection(ctx context.Context, name string) (*dto.FindOrCreatePriorityDirectionResponse, error)
}

type DictionaryHandler struct {
	dictionaryUC DictionaryService
	logger       *zap.Logger
}

func NewDictionaryHandler(dictionaryUC DictionaryService, logger *zap.Logger) *DictionaryHandler {
	return &DictionaryHandler{
		dictionaryUC: dictionaryUC,
		logger:       logger,
	}
}

// InfrastructureTypes godoc
// @Summary Типы инфраструктуры
// @Tags Dictionaries
// @Produce json
// @Param lang query string false "Язык (ru, kz, en)" default(ru)
// @Param includeInactive query bool false "Включить неактивные"
// @Success 200 {object} utils.Response{data=[]domain.InfrastructureType}
// @Router /api/dictionaries/infrastructure-types [get]
func (h *DictionaryHandler) InfrastructureTypes(c *fiber.Ctx) error {
	lang, err := queryLang(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	types, err := h.dictionaryUC.InfrastructureTypes(c.UserContext(), lang, c.QueryBool("includeInactive", false))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendList(c, types, len(types))
}

// Regions godoc
// @Summary Регионы с дочерними
// @Tags Dictionaries
// @Produce json
// @Param lang query string false "Язык (ru, kz, en)" default(ru)
// @Success 200 {object} utils.Response{data=[]domain.Region}
// @Router /api/dictionaries/regions [get]
func (h *DictionaryHandler) Regions(c *fiber.Ctx) error {
	lang, err := queryLang(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	regions, err := h.dictionaryUC.Regions(c.UserContext(), lang)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendList(c, regions, len(regions))
}

// PriorityDirections godoc
// @Summary Приоритетные направления
// @Tags Dictionaries
// @Produce json
// @Param includeInactive query bool false "Включить неактивные"
// @Success 200 {object} utils.Response{data=[]domain.PriorityDirection}
// @Router /api/dictionaries/priority-directions [get]
func (h *DictionaryHandler) PriorityDirections(c *fiber.Ctx) error {
	directions, err := h.dictionaryUC.PriorityDirections(c.UserContext(), c.QueryBool("includeInactive", false))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendList(c, directions, len(directions))
}

// Search godoc
// @Summary Автокомплит по справочникам
// @Description Запрос короче 2 символов возвращает пустые списки
// @Tags Dictionaries
// @Produce json
// @Param q query string true "Запрос"
// @Param lang query string false "Язык (ru, kz, en)" default(ru)
// @Success 200 {object} utils.Response{data=domain.DictionarySearchResult}
// @Router /api/dictionaries/search [get]
func (h *DictionaryHandler) Search(c *fiber.Ctx) error {
	lang, err := queryLang(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.dictionaryUC.Search(c.UserContext(), c.Query("q"), lang)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result)
}

// FindOrCreatePriorityDirection godoc
// @Summary Найти или создать приоритетное направление
// @Tags Dictionaries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FindOrCreatePriorityDirectionRequest true "Название"
// @Success 200 {object} utils.Response{data=dto.FindOrCreatePriorityDirectionResponse}
// @Success 201 {object} utils.Response{data=dto.FindOrCreatePriorityDirectionResponse}
// @Failure 400 {object} utils.Response
// @Router /api/dictionaries/priority-directions [post]
func (h *DictionaryHandler) FindOrCreatePriorityDirection(c *fiber.Ctx) error {
	var req dto.FindOrCreatePriorityDirectionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.dictionaryUC.FindOrCreatePriorityDirection(c.UserContext(), req.Name)
	if err != nil {
		return utils.SendError(c, err)
	}

	if result.Created {
		return utils.SendCreated(c, result, "Направление создано")
	}
	return utils.SendSuccess(c, result)
}
