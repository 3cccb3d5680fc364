package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/pkg/errors"
	"github.com/innovation-atlas/internal/pkg/utils"
	"github.com/innovation-atlas/internal/pkg/validator"
	"github.com/innovation-atlas/internal/usecase/dto"
)

// ObjectService - операции над объектами, которые нужны обработчику
type ObjectService interface {
	List(ctx context.Context, filter domain.ObjectFilter) ([]dto.ObjectResponse, error)
	GetByID(ctx context.Context, id int64, lang domain.Language) (*dto.ObjectResponse, error)
	Create(ctx context.Context, req dto.CreateObjectRequest, lang domain.Language) (*dto.ObjectResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateObjectRequest, lang domain.Language) (*dto.ObjectResponse, error)
	Delete(ctx context.Context, id int64) error
	Bulk(ctx context.Context, req dto.BulkOperationRequest) (*dto.BulkOperationResponse, error)
	Export(ctx context.Context, filter domain.ObjectFilter) ([]byte, error)
}

// ObjectHandler - обработчик объектов инфраструктуры
type ObjectHandler struct {
	objectUC ObjectService
	logger   *zap.Logger
}

func NewObjectHandler(objectUC ObjectService, logger *zap.Logger) *ObjectHandler {
	return &ObjectHandler{
		objectUC: objectUC,
		logger:   logger,
	}
}

// List godoc
// @Summary Список объектов
// @Description Объекты с переводом на выбранный язык. priorityDirections принимает "1,2", повторы и форму priorityDirections[]
// @Tags Objects
// @Produce json
// @Param lang query string false "Язык (ru, kz, en)" default(ru)
// @Param search query string false "Подстрока названия или адреса"
// @Param infrastructureTypeId query int false "Тип инфраструктуры"
// @Param regionId query int false "Регион"
// @Param priorityDirections query []int false "Приоритетные направления (любое из)"
// @Param isPublished query bool false "Опубликован ли перевод"
// @Param geocodingStatus query string false "PENDING, SUCCESS, FAILED, MANUAL"
// @Success 200 {object} utils.Response{data=[]dto.ObjectResponse}
// @Failure 400 {object} utils.Response
// @Router /api/objects [get]
func (h *ObjectHandler) List(c *fiber.Ctx) error {
	filter, err := parseObjectFilter(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	objects, err := h.objectUC.List(c.UserContext(), filter)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendList(c, objects, len(objects))
}

// GetByID godoc
// @Summary Объект по ID
// @Tags Objects
// @Produce json
// @Param id path int true "ID объекта"
// @Param lang query string false "Язык (ru, kz, en)" default(ru)
// @Success 200 {object} utils.Response{data=dto.ObjectResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/objects/{id} [get]
func (h *ObjectHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	lang, err := queryLang(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	obj, err := h.objectUC.GetByID(c.UserContext(), id, lang)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, obj)
}

// Create godoc
// @Summary Создать объект
// @Tags Objects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lang query string false "Язык ответа" default(ru)
// @Param request body dto.CreateObjectRequest true "Объект"
// @Success 201 {object} utils.Response{data=dto.ObjectResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /api/objects [post]
func (h *ObjectHandler) Create(c *fiber.Ctx) error {
	lang, err := queryLang(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.CreateObjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	obj, err := h.objectUC.Create(c.UserContext(), req, lang)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, obj, "Объект создан")
}

// Update godoc
// @Summary Обновить объект
// @Description Отсутствующие поля не меняются; переданные translations, phones, organizations заменяются целиком
// @Tags Objects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID объекта"
// @Param lang query string false "Язык ответа" default(ru)
// @Param request body dto.UpdateObjectRequest true "Изменения"
// @Success 200 {object} utils.Response{data=dto.ObjectResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/objects/{id} [put]
func (h *ObjectHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	lang, err := queryLang(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateObjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	obj, err := h.objectUC.Update(c.UserContext(), id, req, lang)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, obj)
}

// Delete godoc
// @Summary Удалить объект
// @Tags Objects
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID объекта"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/objects/{id} [delete]
func (h *ObjectHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.objectUC.Delete(c.UserContext(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendMessage(c, "Объект удалён")
}

// Bulk godoc
// @Summary Массовая операция
// @Description activate и deactivate меняют публикацию перевода на lang, delete удаляет объекты
// @Tags Objects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkOperationRequest true "Операция"
// @Success 200 {object} utils.Response{data=dto.BulkOperationResponse}
// @Failure 400 {object} utils.Response
// @Router /api/objects/bulk [post]
func (h *ObjectHandler) Bulk(c *fiber.Ctx) error {
	var req dto.BulkOperationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.objectUC.Bulk(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(utils.Response{
		Success: true,
		Data:    result,
		Message: bulkMessage(result),
	})
}

// Export godoc
// @Summary Выгрузка объектов в XLSX
// @Tags Objects
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param lang query string false "Язык (ru, kz, en)" default(ru)
// @Success 200 {file} file
// @Failure 400 {object} utils.Response
// @Router /api/objects/export [get]
func (h *ObjectHandler) Export(c *fiber.Ctx) error {
	filter, err := parseObjectFilter(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	data, err := h.objectUC.Export(c.UserContext(), filter)
	if err != nil {
		return utils.SendError(c, err)
	}

	filename := fmt.Sprintf("objects_%s_%s.xlsx", filter.Lang, time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

func parseObjectFilter(c *fiber.Ctx) (domain.ObjectFilter, error) {
	var (
		q   dto.ObjectListQuery
		err error
	)

	q.Search = c.Query("search")
	q.GeocodingStatus = c.Query("geocodingStatus")
	q.Lang = c.Query("lang")
	if q.InfrastructureTypeID, err = queryOptionalInt64(c, "infrastructureTypeId"); err != nil {
		return domain.ObjectFilter{}, err
	}
	if q.RegionID, err = queryOptionalInt64(c, "regionId"); err != nil {
		return domain.ObjectFilter{}, err
	}
	if q.PriorityDirections, err = queryInt64List(c, "priorityDirections"); err != nil {
		return domain.ObjectFilter{}, err
	}
	if q.IsPublished, err = queryOptionalBool(c, "isPublished"); err != nil {
		return domain.ObjectFilter{}, err
	}

	if err := validator.Validate(&q); err != nil {
		return domain.ObjectFilter{}, err
	}
	return q.ToFilter(), nil
}

func bulkMessage(r *dto.BulkOperationResponse) string {
	switch r.Action {
	case dto.BulkActionActivate:
		return fmt.Sprintf("Активировано объектов: %d", r.Affected)
	case dto.BulkActionDeactivate:
		return fmt.Sprintf("Деактивировано объектов: %d", r.Affected)
	default:
		return fmt.Sprintf("Удалено объектов: %d", r.Affected)
	}
}
