package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/domain/repository"
	"github.com/innovation-atlas/internal/pkg/errors"
	"github.com/innovation-atlas/internal/pkg/utils"
)

// GeocodeOutcome - что сделал воркер с объектом
type GeocodeOutcome string

const (
	GeocodeFromMapsURL GeocodeOutcome = "maps_url"
	GeocodeFromAddress GeocodeOutcome = "address"
	GeocodeNotFound    GeocodeOutcome = "not_found"
	GeocodeSkipped     GeocodeOutcome = "skipped"
)

// GeocodingUseCase определяет координаты объектов без них
type GeocodingUseCase struct {
	objectRepo repository.ObjectRepository
	geocoder   repository.GeocoderRepository
	logger     *zap.Logger
}

// NewGeocodingUseCase - geocoder может быть nil, тогда используются только ссылки Google Maps
func NewGeocodingUseCase(
	objectRepo repository.ObjectRepository,
	geocoder repository.GeocoderRepository,
	logger *zap.Logger,
) *GeocodingUseCase {
	return &GeocodingUseCase{
		objectRepo: objectRepo,
		geocoder:   geocoder,
		logger:     logger,
	}
}

// GeocodeObject сначала разбирает ссылку Google Maps, затем геокодирует адрес.
// Объекты с координатами или в статусе MANUAL не трогаются.
func (uc *GeocodingUseCase) GeocodeObject(ctx context.Context, id int64) (GeocodeOutcome, error) {
	obj, err := uc.objectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errors.ErrObjectNotFound) || errors.Is(err, errors.ErrRecordNotFound) {
			uc.logger.Debug("Geocoding skipped: object deleted", zap.Int64("object_id", id))
			return GeocodeSkipped, nil
		}
		return "", err
	}

	if obj.GeocodingStatus == domain.GeocodingManual || obj.HasCoordinates() {
		return GeocodeSkipped, nil
	}

	if obj.GoogleMapsURL != nil {
		if lat, lon, ok := utils.ParseGoogleMapsCoordinates(*obj.GoogleMapsURL); ok {
			return GeocodeFromMapsURL, uc.store(ctx, id, &domain.Coordinate{Lat: lat, Lon: lon}, domain.GeocodingSuccess)
		}
	}

	if uc.geocoder == nil {
		return GeocodeSkipped, nil
	}

	address, lang := geocodingAddress(obj)
	if address == "" {
		return GeocodeNotFound, uc.store(ctx, id, nil, domain.GeocodingFailed)
	}

	result, err := uc.geocoder.Geocode(ctx, address, lang)
	if err != nil {
		return "", err
	}
	if result == nil || !utils.ValidateCoordinates(result.Lat, result.Lon) {
		uc.logger.Info("Address not found by geocoder",
			zap.Int64("object_id", id),
			zap.String("address", address),
		)
		return GeocodeNotFound, uc.store(ctx, id, nil, domain.GeocodingFailed)
	}

	uc.logger.Debug("Address geocoded",
		zap.Int64("object_id", id),
		zap.String("place", result.PlaceName),
		zap.Float64("relevance", result.Relevance),
	)

	return GeocodeFromAddress, uc.store(ctx, id, &domain.Coordinate{Lat: result.Lat, Lon: result.Lon}, domain.GeocodingSuccess)
}

// MarkFailed ставит статус FAILED после исчерпания попыток
func (uc *GeocodingUseCase) MarkFailed(ctx context.Context, id int64) error {
	return uc.store(ctx, id, nil, domain.GeocodingFailed)
}

func (uc *GeocodingUseCase) store(ctx context.Context, id int64, coords *domain.Coordinate, status domain.GeocodingStatus) error {
	updated, err := uc.objectRepo.UpdateGeocoding(ctx, id, coords, status)
	if err != nil {
		return err
	}
	if !updated {
		uc.logger.Debug("Geocoding result discarded", zap.Int64("object_id", id))
		return nil
	}

	uc.logger.Info("Geocoding status updated",
		zap.Int64("object_id", id),
		zap.String("status", string(status)),
	)
	return nil
}

// geocodingAddress - адрес на русском, иначе на первом доступном языке
func geocodingAddress(obj *domain.Object) (string, domain.Language) {
	lang, ok := obj.PreferredLanguage(domain.LanguageRU)
	if !ok {
		return "", domain.LanguageRU
	}
	t, _ := obj.Translation(lang)
	return t.Address, lang
}
