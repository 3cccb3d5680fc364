package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/domain/repository"
	"github.com/innovation-atlas/internal/pkg/errors"
	"github.com/innovation-atlas/internal/usecase/dto"
)

// ObjectPolicy - настраиваемые правила для объектов
type ObjectPolicy struct {
	// RequirePublishedOnUpdate - при замене переводов хотя бы один должен остаться опубликованным
	RequirePublishedOnUpdate bool
}

// ObjectUseCase - бизнес-логика объектов инфраструктуры
type ObjectUseCase struct {
	objectRepo repository.ObjectRepository
	cacheRepo  repository.CacheRepository
	streamRepo repository.StreamRepository
	policy     ObjectPolicy
	logger     *zap.Logger
	now        func() time.Time
}

// NewObjectUseCase создаёт use case объектов. cacheRepo и streamRepo могут быть nil.
func NewObjectUseCase(
	objectRepo repository.ObjectRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	policy ObjectPolicy,
	logger *zap.Logger,
) *ObjectUseCase {
	return &ObjectUseCase{
		objectRepo: objectRepo,
		cacheRepo:  cacheRepo,
		streamRepo: streamRepo,
		policy:     policy,
		logger:     logger,
		now:        time.Now,
	}
}

// List возвращает объекты с переводом на filter.Lang
func (uc *ObjectUseCase) List(ctx context.Context, filter domain.ObjectFilter) ([]dto.ObjectResponse, error) {
	if filter.Lang == "" {
		filter.Lang = domain.DefaultLanguage
	}
	if !filter.Lang.IsValid() {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"lang": "must be one of: ru kz en",
		})
	}
	if filter.GeocodingStatus != nil && !filter.GeocodingStatus.IsValid() {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"geocodingStatus": "must be one of: PENDING SUCCESS FAILED MANUAL",
		})
	}

	objects, err := uc.objectRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list objects", zap.Error(err))
		return nil, err
	}

	uc.logger.Debug("Objects listed",
		zap.String("lang", filter.Lang.String()),
		zap.Int("count", len(objects)),
	)

	return dto.NewObjectListResponse(objects), nil
}

// GetByID возвращает объект в языке lang. Объект без такого перевода считается отсутствующим.
func (uc *ObjectUseCase) GetByID(ctx context.Context, id int64, lang domain.Language) (*dto.ObjectResponse, error) {
	if id <= 0 {
		return nil, errors.ErrInvalidObjectID
	}
	if !lang.IsValid() {
		return nil, errors.ErrInvalidRequest
	}

	obj, err := uc.objectRepo.GetLocalized(ctx, id, lang)
	if err != nil {
		return nil, err
	}

	resp := dto.NewObjectResponse(obj)
	return &resp, nil
}

// Create создаёт объект со всеми дочерними записями одной транзакцией
func (uc *ObjectUseCase) Create(ctx context.Context, req dto.CreateObjectRequest, lang domain.Language) (*dto.ObjectResponse, error) {
	if len(req.Phones) > domain.MaxPhonesPerObject {
		return nil, errors.ErrTooManyPhones
	}

	translations := toTranslations(req.Translations)
	if !domain.HasPublishedTranslation(translations) {
		return nil, errors.ErrNoPublishedTranslation
	}

	status := domain.GeocodingPending
	if req.GeocodingStatus != "" {
		status = domain.GeocodingStatus(req.GeocodingStatus)
	}

	obj := &domain.Object{
		InfrastructureTypeID: req.InfrastructureTypeID,
		RegionID:             req.RegionID,
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		GoogleMapsURL:        emptyToNil(req.GoogleMapsURL),
		Website:              emptyToNil(req.Website),
		LogoURL:              emptyToNil(req.LogoURL),
		ImageURL:             emptyToNil(req.ImageURL),
		GeocodingStatus:      status,
		Translations:         translations,
		Phones:               toPhones(req.Phones),
		Organizations:        toOrganizations(req.Organizations),
		PriorityDirectionIDs: req.PriorityDirections,
	}

	id, err := uc.objectRepo.Create(ctx, obj)
	if err != nil {
		uc.logger.Error("Failed to create object", zap.Error(err))
		return nil, err
	}
	obj.ID = id

	uc.logger.Info("Object created",
		zap.Int64("object_id", id),
		zap.Int("translations", len(translations)),
		zap.Int("phones", len(obj.Phones)),
	)

	uc.invalidateDictionaries(ctx)
	if needsGeocoding(obj) {
		uc.requestGeocoding(ctx, id)
	}

	resolved, ok := obj.PreferredLanguage(lang)
	if !ok {
		resolved = lang
	}
	return uc.GetByID(ctx, id, resolved)
}

// Update применяет частичное обновление. Переданные коллекции заменяются целиком.
func (uc *ObjectUseCase) Update(ctx context.Context, id int64, req dto.UpdateObjectRequest, lang domain.Language) (*dto.ObjectResponse, error) {
	if id <= 0 {
		return nil, errors.ErrInvalidObjectID
	}
	if req.Phones != nil && len(*req.Phones) > domain.MaxPhonesPerObject {
		return nil, errors.ErrTooManyPhones
	}

	patch := toPatch(req)
	if uc.policy.RequirePublishedOnUpdate && patch.Translations != nil &&
		!domain.HasPublishedTranslation(*patch.Translations) {
		return nil, errors.ErrNoPublishedTranslation
	}

	if err := uc.objectRepo.Update(ctx, id, patch); err != nil {
		if !errors.Is(err, errors.ErrObjectNotFound) {
			uc.logger.Error("Failed to update object", zap.Int64("object_id", id), zap.Error(err))
		}
		return nil, err
	}

	uc.invalidateDictionaries(ctx)

	obj, err := uc.objectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Object updated", zap.Int64("object_id", id))

	if needsGeocoding(obj) {
		uc.requestGeocoding(ctx, id)
	}

	resolved, ok := obj.PreferredLanguage(lang)
	if !ok {
		return nil, errors.ErrObjectNotFound
	}
	return uc.GetByID(ctx, id, resolved)
}

// Delete удаляет объект каскадно
func (uc *ObjectUseCase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.ErrInvalidObjectID
	}

	if err := uc.objectRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("Object deleted", zap.Int64("object_id", id))
	uc.invalidateDictionaries(ctx)
	return nil
}

// BulkSetPublished меняет флаг публикации переводов на lang. Несуществующие id пропускаются.
func (uc *ObjectUseCase) BulkSetPublished(ctx context.Context, ids []int64, isPublished bool, lang domain.Language) (int64, error) {
	if !lang.IsValid() {
		return 0, errors.ErrInvalidRequest
	}

	count, err := uc.objectRepo.SetPublished(ctx, ids, lang, isPublished)
	if err != nil {
		uc.logger.Error("Failed to set published flag", zap.Int("ids", len(ids)), zap.Error(err))
		return 0, err
	}

	uc.logger.Info("Bulk publish applied",
		zap.Bool("is_published", isPublished),
		zap.String("lang", lang.String()),
		zap.Int("requested", len(ids)),
		zap.Int64("affected", count),
	)

	if count > 0 {
		uc.invalidateDictionaries(ctx)
	}
	return count, nil
}

// BulkDelete удаляет объекты по одному, пропуская несуществующие. Возвращает число удалённых.
func (uc *ObjectUseCase) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	var deleted int64
	for _, id := range ids {
		err := uc.objectRepo.Delete(ctx, id)
		if errors.Is(err, errors.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			uc.logger.Error("Bulk delete interrupted",
				zap.Int64("object_id", id),
				zap.Int64("deleted", deleted),
				zap.Error(err),
			)
			if deleted > 0 {
				uc.invalidateDictionaries(ctx)
			}
			return deleted, err
		}
		deleted++
	}

	uc.logger.Info("Bulk delete applied", zap.Int("requested", len(ids)), zap.Int64("deleted", deleted))

	if deleted > 0 {
		uc.invalidateDictionaries(ctx)
	}
	return deleted, nil
}

// Bulk выполняет массовую операцию из запроса админ-панели
func (uc *ObjectUseCase) Bulk(ctx context.Context, req dto.BulkOperationRequest) (*dto.BulkOperationResponse, error) {
	lang := domain.ParseLanguage(req.Lang)

	var (
		affected int64
		err      error
	)
	switch req.Action {
	case dto.BulkActionActivate:
		affected, err = uc.BulkSetPublished(ctx, req.IDs, true, lang)
	case dto.BulkActionDeactivate:
		affected, err = uc.BulkSetPublished(ctx, req.IDs, false, lang)
	case dto.BulkActionDelete:
		affected, err = uc.BulkDelete(ctx, req.IDs)
	default:
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"action": "must be one of: activate deactivate delete",
		})
	}
	if err != nil {
		return nil, err
	}

	return &dto.BulkOperationResponse{Action: req.Action, Affected: affected}, nil
}

// invalidateDictionaries сбрасывает кеш справочников: в них хранится число объектов
func (uc *ObjectUseCase) invalidateDictionaries(ctx context.Context) {
	if uc.cacheRepo == nil {
		return
	}
	if _, err := uc.cacheRepo.DeleteByPrefix(ctx, dictionaryCachePrefix); err != nil {
		uc.logger.Warn("Failed to invalidate dictionary cache", zap.Error(err))
	}
}

// requestGeocoding публикует задачу для воркера геокодирования. Ошибка публикации не ломает запрос.
func (uc *ObjectUseCase) requestGeocoding(ctx context.Context, id int64) {
	if uc.streamRepo == nil {
		return
	}

	event := domain.GeocodeRequestedEvent{ObjectID: id, RequestedAt: uc.now().UTC()}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamObjectGeocode, event); err != nil {
		uc.logger.Warn("Failed to publish geocode request",
			zap.Int64("object_id", id),
			zap.Error(err),
		)
		return
	}

	uc.logger.Debug("Geocode requested", zap.Int64("object_id", id))
}

func needsGeocoding(obj *domain.Object) bool {
	return !obj.HasCoordinates() && obj.GeocodingStatus != domain.GeocodingManual
}

func toTranslations(in []dto.TranslationInput) []domain.ObjectTranslation {
	out := make([]domain.ObjectTranslation, 0, len(in))
	for _, t := range in {
		out = append(out, domain.ObjectTranslation{
			LanguageCode: domain.Language(t.LanguageCode),
			Name:         domain.TruncateText(t.Name),
			Address:      domain.TruncateText(t.Address),
			IsPublished:  t.IsPublished,
		})
	}
	return out
}

// toPhones сохраняет порядок телефонов как позицию в массиве, тип по умолчанию MAIN
func toPhones(in []dto.PhoneInput) []domain.Phone {
	out := make([]domain.Phone, 0, len(in))
	for i, p := range in {
		phoneType := domain.PhoneType(p.Type)
		if !phoneType.IsValid() {
			phoneType = domain.PhoneMain
		}
		out = append(out, domain.Phone{
			Number: p.Number,
			Type:   phoneType,
			Order:  i,
		})
	}
	return out
}

func toOrganizations(in []dto.OrganizationInput) []domain.Organization {
	out := make([]domain.Organization, 0, len(in))
	for _, o := range in {
		out = append(out, domain.Organization{
			Name:    o.Name,
			Website: emptyToNil(o.Website),
		})
	}
	return out
}

func toPatch(req dto.UpdateObjectRequest) domain.ObjectPatch {
	patch := domain.ObjectPatch{
		InfrastructureTypeID: req.InfrastructureTypeID,
		RegionID:             req.RegionID,
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		GoogleMapsURL:        req.GoogleMapsURL,
		Website:              req.Website,
		LogoURL:              req.LogoURL,
		ImageURL:             req.ImageURL,
	}
	if req.GeocodingStatus != nil {
		status := domain.GeocodingStatus(*req.GeocodingStatus)
		patch.GeocodingStatus = &status
	}
	if req.Translations != nil {
		translations := toTranslations(*req.Translations)
		patch.Translations = &translations
	}
	if req.Phones != nil {
		phones := toPhones(*req.Phones)
		patch.Phones = &phones
	}
	if req.Organizations != nil {
		organizations := toOrganizations(*req.Organizations)
		patch.Organizations = &organizations
	}
	if req.PriorityDirections != nil {
		ids := append([]int64{}, *req.PriorityDirections...)
		patch.PriorityDirectionIDs = &ids
	}
	return patch
}

// emptyToNil - пустая строка в запросе означает отсутствие значения
func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
