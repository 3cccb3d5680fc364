package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/domain/repository"
	"github.com/innovation-atlas/internal/pkg/errors"
	"github.com/innovation-atlas/internal/usecase/dto"
)

// dictionaryCachePrefix - общий префикс ключей справочников, сбрасывается при изменении объектов
const dictionaryCachePrefix = "dict:"

type DictionaryUseCase struct {
	dictRepo  repository.DictionaryRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewDictionaryUseCase - cacheRepo может быть nil, тогда справочники читаются из БД напрямую
func NewDictionaryUseCase(
	dictRepo repository.DictionaryRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *DictionaryUseCase {
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}
	return &DictionaryUseCase{
		dictRepo:  dictRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// InfrastructureTypes возвращает типы инфраструктуры с названием на lang
func (uc *DictionaryUseCase) InfrastructureTypes(ctx context.Context, lang domain.Language, includeInactive bool) ([]domain.InfrastructureType, error) {
	if !lang.IsValid() {
		return nil, errors.ErrInvalidRequest
	}

	key := fmt.Sprintf("%stypes:%s:%t", dictionaryCachePrefix, lang, includeInactive)
	return cached(ctx, uc, key, func() ([]domain.InfrastructureType, error) {
		return uc.dictRepo.ListInfrastructureTypes(ctx, lang, includeInactive)
	})
}

// Regions возвращает корневые регионы с дочерними
func (uc *DictionaryUseCase) Regions(ctx context.Context, lang domain.Language) ([]domain.Region, error) {
	if !lang.IsValid() {
		return nil, errors.ErrInvalidRequest
	}

	key := fmt.Sprintf("%sregions:%s", dictionaryCachePrefix, lang)
	return cached(ctx, uc, key, func() ([]domain.Region, error) {
		return uc.dictRepo.ListRegions(ctx, lang)
	})
}

func (uc *DictionaryUseCase) PriorityDirections(ctx context.Context, includeInactive bool) ([]domain.PriorityDirection, error) {
	key := fmt.Sprintf("%sdirections:%t", dictionaryCachePrefix, includeInactive)
	return cached(ctx, uc, key, func() ([]domain.PriorityDirection, error) {
		return uc.dictRepo.ListPriorityDirections(ctx, includeInactive)
	})
}

// Search - автокомплит по трём справочникам, не больше DictionarySearchLimit в каждом.
// Запрос короче DictionarySearchMinQuery символов возвращает пустые списки.
func (uc *DictionaryUseCase) Search(ctx context.Context, query string, lang domain.Language) (*domain.DictionarySearchResult, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < domain.DictionarySearchMinQuery {
		return domain.EmptyDictionarySearchResult(), nil
	}
	if !lang.IsValid() {
		return nil, errors.ErrInvalidRequest
	}

	result := domain.EmptyDictionarySearchResult()

	types, err := uc.dictRepo.SearchInfrastructureTypes(ctx, query, lang, domain.DictionarySearchLimit)
	if err != nil {
		return nil, err
	}
	regions, err := uc.dictRepo.SearchRegions(ctx, query, lang, domain.DictionarySearchLimit)
	if err != nil {
		return nil, err
	}
	directions, err := uc.dictRepo.SearchPriorityDirections(ctx, query, domain.DictionarySearchLimit)
	if err != nil {
		return nil, err
	}

	result.InfrastructureTypes = append(result.InfrastructureTypes, types...)
	result.Regions = append(result.Regions, regions...)
	result.PriorityDirections = append(result.PriorityDirections, directions...)

	uc.logger.Debug("Dictionary search",
		zap.String("query", query),
		zap.Int("types", len(types)),
		zap.Int("regions", len(regions)),
		zap.Int("directions", len(directions)),
	)

	return result, nil
}

// FindOrCreatePriorityDirection ищет направление по имени без учёта регистра, иначе создаёт активное
func (uc *DictionaryUseCase) FindOrCreatePriorityDirection(ctx context.Context, name string) (*dto.FindOrCreatePriorityDirectionResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ErrValidation.WithDetails(map[string]interface{}{"name": "is required"})
	}

	existing, err := uc.dictRepo.FindPriorityDirectionByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &dto.FindOrCreatePriorityDirectionResponse{ID: existing.ID, Name: existing.Name}, nil
	}

	created, err := uc.dictRepo.CreatePriorityDirection(ctx, name)
	if err != nil {
		uc.logger.Error("Failed to create priority direction", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Priority direction created", zap.Int64("id", created.ID), zap.String("name", created.Name))
	uc.invalidate(ctx)

	return &dto.FindOrCreatePriorityDirectionResponse{ID: created.ID, Name: created.Name, Created: true}, nil
}

func (uc *DictionaryUseCase) invalidate(ctx context.Context) {
	if uc.cacheRepo == nil {
		return
	}
	if _, err := uc.cacheRepo.DeleteByPrefix(ctx, dictionaryCachePrefix); err != nil {
		uc.logger.Warn("Failed to invalidate dictionary cache", zap.Error(err))
	}
}

// cached читает значение из кеша или загружает его. Ошибки кеша логируются и не возвращаются.
func cached[T any](ctx context.Context, uc *DictionaryUseCase, key string, load func() (T, error)) (T, error) {
	if uc.cacheRepo != nil {
		raw, err := uc.cacheRepo.Get(ctx, key)
		if err != nil {
			uc.logger.Warn("Dictionary cache read failed", zap.String("key", key), zap.Error(err))
		} else if len(raw) > 0 {
			var value T
			if err := json.Unmarshal(raw, &value); err == nil {
				uc.logger.Debug("Dictionary cache hit", zap.String("key", key))
				return value, nil
			}
			uc.logger.Warn("Dictionary cache entry is corrupted", zap.String("key", key))
		}
	}

	value, err := load()
	if err != nil {
		var zero T
		return zero, err
	}

	if uc.cacheRepo != nil {
		raw, err := json.Marshal(value)
		if err == nil {
			err = uc.cacheRepo.Set(ctx, key, raw, uc.cacheTTL)
		}
		if err != nil {
			uc.logger.Warn("Failed to cache dictionary", zap.String("key", key), zap.Error(err))
		}
	}

	return value, nil
}
