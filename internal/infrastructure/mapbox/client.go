package mapbox

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/config"
	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/domain/repository"
	apperrors "github.com/innovation-atlas/internal/pkg/errors"
)

const geocodingPath = "/geocoding/v5/mapbox.places/{query}.json"

// geocodingResponse - часть ответа Mapbox Geocoding API, которая нам нужна
type geocodingResponse struct {
	Features []struct {
		PlaceName string    `json:"place_name"`
		Center    []float64 `json:"center"` // [lon, lat]
		Relevance float64   `json:"relevance"`
	} `json:"features"`
	Message string `json:"message"`
}

type client struct {
	http        *resty.Client
	accessToken string
	country     string
	logger      *zap.Logger
}

// NewMapboxClient создает клиент прямого геокодирования Mapbox
func NewMapboxClient(cfg *config.MapboxConfig, logger *zap.Logger) repository.GeocoderRepository {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(time.Duration(cfg.RequestTimeout) * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("Accept", "application/json")

	return &client{
		http:        httpClient,
		accessToken: cfg.AccessToken,
		country:     cfg.Country,
		logger:      logger,
	}
}

// Geocode ищет адрес в пределах страны из конфига и возвращает самый релевантный результат
func (c *client) Geocode(ctx context.Context, query string, lang domain.Language) (*domain.GeocodeResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	var result geocodingResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("query", query).
		SetQueryParams(map[string]string{
			"access_token": c.accessToken,
			"country":      c.country,
			"language":     mapboxLanguage(lang),
			"limit":        "1",
		}).
		SetResult(&result).
		SetError(&result).
		Get(geocodingPath)
	if err != nil {
		c.logger.Error("Mapbox geocoding request failed", zap.String("query", query), zap.Error(err))
		return nil, apperrors.ErrGeocodingFailed.Wrap(err)
	}

	if resp.IsError() {
		c.logger.Error("Mapbox geocoding returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("message", result.Message),
		)
		return nil, apperrors.ErrGeocodingFailed.Wrap(
			fmt.Errorf("mapbox status %d: %s", resp.StatusCode(), result.Message),
		)
	}

	if len(result.Features) == 0 || len(result.Features[0].Center) != 2 {
		c.logger.Debug("Mapbox geocoding found nothing", zap.String("query", query))
		return nil, nil
	}

	feature := result.Features[0]
	return &domain.GeocodeResult{
		Lon:       feature.Center[0],
		Lat:       feature.Center[1],
		PlaceName: feature.PlaceName,
		Relevance: feature.Relevance,
	}, nil
}

// mapboxLanguage - Mapbox использует ISO 639-1 код "kk" для казахского
func mapboxLanguage(lang domain.Language) string {
	if lang == domain.LanguageKZ {
		return "kk"
	}
	if !lang.IsValid() {
		return string(domain.DefaultLanguage)
	}
	return string(lang)
}
