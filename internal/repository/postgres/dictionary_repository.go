package postgres

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/domain/repository"
	apperrors "github.com/innovation-atlas/internal/pkg/errors"
)

type dictionaryRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewDictionaryRepository создает новый экземпляр DictionaryRepository
func NewDictionaryRepository(db *DB, logger *zap.Logger) repository.DictionaryRepository {
	return &dictionaryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *dictionaryRepository) ListInfrastructureTypes(ctx context.Context, lang domain.Language, includeInactive bool) ([]domain.InfrastructureType, error) {
	query := `
		SELECT
			it.id, it.icon, it.color, it.sort_order, it.is_active,
			COALESCE(t.name, '') AS name,
			(SELECT COUNT(*) FROM objects o WHERE o.infrastructure_type_id = it.id) AS objects_count
		FROM infrastructure_types it
		LEFT JOIN infrastructure_type_translations t
			ON t.infrastructure_type_id = it.id AND t.language_code = $1
		WHERE ($2 OR it.is_active)
		ORDER BY it.sort_order, it.id`

	types := []domain.InfrastructureType{}
	if err := r.db.SelectContext(ctx, &types, query, string(lang), includeInactive); err != nil {
		r.logger.Error("Failed to list infrastructure types", zap.Error(err))
		return nil, mapError(err)
	}
	return types, nil
}

// ListRegions загружает все регионы одним запросом и собирает один уровень вложенности
func (r *dictionaryRepository) ListRegions(ctx context.Context, lang domain.Language) ([]domain.Region, error) {
	query := `
		SELECT
			r.id, r.code, r.parent_id,
			COALESCE(t.name, '') AS name,
			(SELECT COUNT(*) FROM objects o WHERE o.region_id = r.id) AS objects_count
		FROM regions r
		LEFT JOIN region_translations t ON t.region_id = r.id AND t.language_code = $1
		ORDER BY r.id`

	var all []domain.Region
	if err := r.db.SelectContext(ctx, &all, query, string(lang)); err != nil {
		r.logger.Error("Failed to list regions", zap.Error(err))
		return nil, mapError(err)
	}

	return buildRegionTree(all), nil
}

func buildRegionTree(all []domain.Region) []domain.Region {
	children := make(map[int64][]domain.Region)
	for _, region := range all {
		if region.ParentID != nil {
			region.Children = []domain.Region{}
			children[*region.ParentID] = append(children[*region.ParentID], region)
		}
	}

	roots := []domain.Region{}
	for _, region := range all {
		if region.ParentID != nil {
			continue
		}
		region.Children = children[region.ID]
		if region.Children == nil {
			region.Children = []domain.Region{}
		}
		roots = append(roots, region)
	}
	return roots
}

func (r *dictionaryRepository) ListPriorityDirections(ctx context.Context, includeInactive bool) ([]domain.PriorityDirection, error) {
	query := `
		SELECT
			pd.id, pd.name, pd.sort_order, pd.is_active,
			(SELECT COUNT(*) FROM object_priority_directions opd WHERE opd.priority_direction_id = pd.id) AS objects_count
		FROM priority_directions pd
		WHERE ($1 OR pd.is_active)
		ORDER BY pd.sort_order, pd.name`

	directions := []domain.PriorityDirection{}
	if err := r.db.SelectContext(ctx, &directions, query, includeInactive); err != nil {
		r.logger.Error("Failed to list priority directions", zap.Error(err))
		return nil, mapError(err)
	}
	return directions, nil
}

func (r *dictionaryRepository) SearchInfrastructureTypes(ctx context.Context, query string, lang domain.Language, limit int) ([]domain.DictionaryHit, error) {
	hits := []domain.DictionaryHit{}
	err := r.db.SelectContext(ctx, &hits, `
		SELECT it.id, t.name, it.icon, it.color
		FROM infrastructure_types it
		JOIN infrastructure_type_translations t
			ON t.infrastructure_type_id = it.id AND t.language_code = $1
		WHERE it.is_active AND t.name ILIKE $2 ESCAPE '\'
		ORDER BY it.sort_order, it.id
		LIMIT $3`,
		string(lang), containsPattern(query), limit)
	if err != nil {
		r.logger.Error("Failed to search infrastructure types", zap.Error(err))
		return nil, mapError(err)
	}
	return withHitType(hits, domain.DictionaryHitInfrastructureType), nil
}

func (r *dictionaryRepository) SearchRegions(ctx context.Context, query string, lang domain.Language, limit int) ([]domain.DictionaryHit, error) {
	hits := []domain.DictionaryHit{}
	err := r.db.SelectContext(ctx, &hits, `
		SELECT r.id, t.name
		FROM regions r
		JOIN region_translations t ON t.region_id = r.id AND t.language_code = $1
		WHERE t.name ILIKE $2 ESCAPE '\'
		ORDER BY r.id
		LIMIT $3`,
		string(lang), containsPattern(query), limit)
	if err != nil {
		r.logger.Error("Failed to search regions", zap.Error(err))
		return nil, mapError(err)
	}
	return withHitType(hits, domain.DictionaryHitRegion), nil
}

func (r *dictionaryRepository) SearchPriorityDirections(ctx context.Context, query string, limit int) ([]domain.DictionaryHit, error) {
	hits := []domain.DictionaryHit{}
	err := r.db.SelectContext(ctx, &hits, `
		SELECT id, name
		FROM priority_directions
		WHERE is_active AND name ILIKE $1 ESCAPE '\'
		ORDER BY sort_order, name
		LIMIT $2`,
		containsPattern(query), limit)
	if err != nil {
		r.logger.Error("Failed to search priority directions", zap.Error(err))
		return nil, mapError(err)
	}
	return withHitType(hits, domain.DictionaryHitPriorityDirection), nil
}

func withHitType(hits []domain.DictionaryHit, hitType string) []domain.DictionaryHit {
	for i := range hits {
		hits[i].Type = hitType
	}
	return hits
}

func (r *dictionaryRepository) FindPriorityDirectionByName(ctx context.Context, name string) (*domain.PriorityDirection, error) {
	var direction domain.PriorityDirection
	err := r.db.GetContext(ctx, &direction, `
		SELECT id, name, sort_order, is_active
		FROM priority_directions
		WHERE LOWER(name) = LOWER($1)
		LIMIT 1`, strings.TrimSpace(name))
	if err != nil {
		mapped := mapError(err)
		if apperrors.Is(mapped, apperrors.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to find priority direction", zap.String("name", name), zap.Error(err))
		return nil, mapped
	}
	return &direction, nil
}

// CreatePriorityDirection вставляет направление; при гонке за тем же именем возвращает существующее
func (r *dictionaryRepository) CreatePriorityDirection(ctx context.Context, name string) (*domain.PriorityDirection, error) {
	var direction domain.PriorityDirection
	err := r.db.GetContext(ctx, &direction, `
		INSERT INTO priority_directions (name, is_active)
		VALUES ($1, TRUE)
		ON CONFLICT ((LOWER(name))) DO UPDATE SET name = priority_directions.name
		RETURNING id, name, sort_order, is_active`, strings.TrimSpace(name))
	if err != nil {
		r.logger.Error("Failed to create priority direction", zap.String("name", name), zap.Error(err))
		return nil, mapError(err)
	}

	r.logger.Info("Priority direction created", zap.Int64("id", direction.ID), zap.String("name", direction.Name))
	return &direction, nil
}
