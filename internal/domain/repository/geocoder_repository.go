package repository

import (
	"context"

	"github.com/innovation-atlas/internal/domain"
)

// GeocoderRepository определяет методы внешнего сервиса геокодирования
type GeocoderRepository interface {
	// Geocode возвращает лучшую точку для адреса или nil, если ничего не найдено
	Geocode(ctx context.Context, query string, lang domain.Language) (*domain.GeocodeResult, error)
}
