package repository

import (
	"context"

	"github.com/innovation-atlas/internal/domain"
)

// DictionaryRepository определяет методы для работы со справочниками
type DictionaryRepository interface {
	// ListInfrastructureTypes возвращает типы по порядку, с именем на lang и числом объектов
	ListInfrastructureTypes(ctx context.Context, lang domain.Language, includeInactive bool) ([]domain.InfrastructureType, error)

	// ListRegions возвращает корневые регионы с вложенными дочерними, по id
	ListRegions(ctx context.Context, lang domain.Language) ([]domain.Region, error)

	// ListPriorityDirections возвращает направления по порядку, затем по имени
	ListPriorityDirections(ctx context.Context, includeInactive bool) ([]domain.PriorityDirection, error)

	// SearchInfrastructureTypes ищет по подстроке без учёта регистра
	SearchInfrastructureTypes(ctx context.Context, query string, lang domain.Language, limit int) ([]domain.DictionaryHit, error)

	SearchRegions(ctx context.Context, query string, lang domain.Language, limit int) ([]domain.DictionaryHit, error)

	SearchPriorityDirections(ctx context.Context, query string, limit int) ([]domain.DictionaryHit, error)

	// FindPriorityDirectionByName ищет направление по точному имени без учёта регистра. nil, если нет
	FindPriorityDirectionByName(ctx context.Context, name string) (*domain.PriorityDirection, error)

	// CreatePriorityDirection создаёт активное направление
	CreatePriorityDirection(ctx context.Context, name string) (*domain.PriorityDirection, error)
}
