package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/domain/repository"
	apperrors "github.com/innovation-atlas/internal/pkg/errors"
)

const objectColumns = `o.id, o.infrastructure_type_id, o.region_id, o.latitude, o.longitude,
	o.google_maps_url, o.website, o.logo_url, o.image_url, o.geocoding_status,
	o.created_at, o.updated_at`

// localizedSelect - объект с переводом на $1 и именами справочников на том же языке.
// INNER JOIN по переводу исключает объекты без перевода на запрошенный язык.
const localizedSelect = `
	SELECT ` + objectColumns + `,
		ot.language_code, ot.name, ot.address, ot.is_published,
		it.icon AS type_icon, it.color AS type_color, COALESCE(itt.name, '') AS type_name,
		COALESCE(rt.name, '') AS region_name
	FROM objects o
	JOIN object_translations ot ON ot.object_id = o.id AND ot.language_code = $1
	JOIN infrastructure_types it ON it.id = o.infrastructure_type_id
	LEFT JOIN infrastructure_type_translations itt
		ON itt.infrastructure_type_id = it.id AND itt.language_code = $1
	LEFT JOIN region_translations rt ON rt.region_id = o.region_id AND rt.language_code = $1`

type localizedRow struct {
	domain.Object
	Language    domain.Language `db:"language_code"`
	Name        string          `db:"name"`
	Address     string          `db:"address"`
	IsPublished bool            `db:"is_published"`
	TypeIcon    string          `db:"type_icon"`
	TypeColor   string          `db:"type_color"`
	TypeName    string          `db:"type_name"`
	RegionName  string          `db:"region_name"`
}

func (r localizedRow) toDomain() *domain.LocalizedObject {
	obj := r.Object
	obj.Phones = []domain.Phone{}
	obj.Organizations = []domain.Organization{}
	obj.PriorityDirectionIDs = []int64{}

	return &domain.LocalizedObject{
		Object:      obj,
		Language:    r.Language,
		Name:        r.Name,
		Address:     r.Address,
		IsPublished: r.IsPublished,
		InfrastructureType: domain.InfrastructureTypeRef{
			ID:    r.InfrastructureTypeID,
			Icon:  r.TypeIcon,
			Color: r.TypeColor,
			Name:  r.TypeName,
		},
		Region: domain.RegionRef{
			ID:   r.RegionID,
			Name: r.RegionName,
		},
		PriorityDirections: []domain.PriorityDirectionRef{},
	}
}

type objectRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewObjectRepository создает новый экземпляр ObjectRepository
func NewObjectRepository(db *DB, logger *zap.Logger) repository.ObjectRepository {
	return &objectRepository{
		db:     db,
		logger: logger,
	}
}

func (r *objectRepository) List(ctx context.Context, filter domain.ObjectFilter) ([]*domain.LocalizedObject, error) {
	lang := filter.Lang
	if lang == "" {
		lang = domain.DefaultLanguage
	}

	where := newWhereBuilder(string(lang))
	if filter.Search != "" {
		where.add(`(ot.name ILIKE %[1]s ESCAPE '\' OR ot.address ILIKE %[1]s ESCAPE '\')`, containsPattern(filter.Search))
	}
	if filter.InfrastructureTypeID != nil {
		where.add("o.infrastructure_type_id = %s", *filter.InfrastructureTypeID)
	}
	if filter.RegionID != nil {
		where.add("o.region_id = %s", *filter.RegionID)
	}
	if len(filter.PriorityDirectionIDs) > 0 {
		where.add(`EXISTS (SELECT 1 FROM object_priority_directions opd
			WHERE opd.object_id = o.id AND opd.priority_direction_id = ANY(%s))`, pq.Array(filter.PriorityDirectionIDs))
	}
	if filter.IsPublished != nil {
		where.add("ot.is_published = %s", *filter.IsPublished)
	}
	if filter.GeocodingStatus != nil {
		where.add("o.geocoding_status = %s", string(*filter.GeocodingStatus))
	}

	query := localizedSelect + where.sql() + " ORDER BY o.id"

	var rows []localizedRow
	if err := r.db.SelectContext(ctx, &rows, query, where.args...); err != nil {
		r.logger.Error("Failed to list objects", zap.Error(err))
		return nil, mapError(err)
	}

	objects := make([]*domain.LocalizedObject, 0, len(rows))
	for _, row := range rows {
		objects = append(objects, row.toDomain())
	}

	if err := r.attachChildren(ctx, r.db, objects); err != nil {
		return nil, err
	}

	return objects, nil
}

func (r *objectRepository) GetLocalized(ctx context.Context, id int64, lang domain.Language) (*domain.LocalizedObject, error) {
	query := localizedSelect + " WHERE o.id = $2"

	var row localizedRow
	if err := r.db.GetContext(ctx, &row, query, string(lang), id); err != nil {
		if apperrors.Is(mapError(err), apperrors.ErrRecordNotFound) {
			return nil, apperrors.ErrObjectNotFound
		}
		r.logger.Error("Failed to get object", zap.Int64("id", id), zap.Error(err))
		return nil, mapError(err)
	}

	obj := row.toDomain()
	if err := r.attachChildren(ctx, r.db, []*domain.LocalizedObject{obj}); err != nil {
		return nil, err
	}
	return obj, nil
}

// attachChildren загружает телефоны, организации и направления для всех объектов тремя запросами
func (r *objectRepository) attachChildren(ctx context.Context, q sqlx.QueryerContext, objects []*domain.LocalizedObject) error {
	if len(objects) == 0 {
		return nil
	}

	ids := make([]int64, len(objects))
	byID := make(map[int64]*domain.LocalizedObject, len(objects))
	for i, obj := range objects {
		ids[i] = obj.ID
		byID[obj.ID] = obj
	}

	var phones []domain.Phone
	err := sqlx.SelectContext(ctx, q, &phones, `
		SELECT id, object_id, number, type, sort_order
		FROM phones
		WHERE object_id = ANY($1)
		ORDER BY object_id, sort_order, id`, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to load phones", zap.Error(err))
		return mapError(err)
	}
	for _, p := range phones {
		if obj, ok := byID[p.ObjectID]; ok {
			obj.Phones = append(obj.Phones, p)
		}
	}

	var orgs []domain.Organization
	err = sqlx.SelectContext(ctx, q, &orgs, `
		SELECT id, object_id, name, website
		FROM organizations
		WHERE object_id = ANY($1)
		ORDER BY object_id, id`, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to load organizations", zap.Error(err))
		return mapError(err)
	}
	for _, o := range orgs {
		if obj, ok := byID[o.ObjectID]; ok {
			obj.Organizations = append(obj.Organizations, o)
		}
	}

	var directions []struct {
		ObjectID int64 `db:"object_id"`
		domain.PriorityDirectionRef
	}
	err = sqlx.SelectContext(ctx, q, &directions, `
		SELECT opd.object_id, pd.id, pd.name
		FROM object_priority_directions opd
		JOIN priority_directions pd ON pd.id = opd.priority_direction_id
		WHERE opd.object_id = ANY($1)
		ORDER BY opd.object_id, pd.sort_order, pd.name`, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to load priority directions", zap.Error(err))
		return mapError(err)
	}
	for _, d := range directions {
		if obj, ok := byID[d.ObjectID]; ok {
			obj.PriorityDirections = append(obj.PriorityDirections, d.PriorityDirectionRef)
			obj.PriorityDirectionIDs = append(obj.PriorityDirectionIDs, d.ID)
		}
	}

	return nil
}

func (r *objectRepository) GetByID(ctx context.Context, id int64) (*domain.Object, error) {
	var obj domain.Object
	err := r.db.GetContext(ctx, &obj, `SELECT `+objectColumns+` FROM objects o WHERE o.id = $1`, id)
	if err != nil {
		if apperrors.Is(mapError(err), apperrors.ErrRecordNotFound) {
			return nil, apperrors.ErrObjectNotFound
		}
		r.logger.Error("Failed to get object", zap.Int64("id", id), zap.Error(err))
		return nil, mapError(err)
	}

	obj.Translations = []domain.ObjectTranslation{}
	if err := r.db.SelectContext(ctx, &obj.Translations, `
		SELECT id, object_id, language_code, name, address, is_published
		FROM object_translations
		WHERE object_id = $1
		ORDER BY id`, id); err != nil {
		return nil, mapError(err)
	}

	obj.Phones = []domain.Phone{}
	if err := r.db.SelectContext(ctx, &obj.Phones, `
		SELECT id, object_id, number, type, sort_order
		FROM phones
		WHERE object_id = $1
		ORDER BY sort_order, id`, id); err != nil {
		return nil, mapError(err)
	}

	obj.Organizations = []domain.Organization{}
	if err := r.db.SelectContext(ctx, &obj.Organizations, `
		SELECT id, object_id, name, website
		FROM organizations
		WHERE object_id = $1
		ORDER BY id`, id); err != nil {
		return nil, mapError(err)
	}

	obj.PriorityDirectionIDs = []int64{}
	if err := r.db.SelectContext(ctx, &obj.PriorityDirectionIDs, `
		SELECT priority_direction_id
		FROM object_priority_directions
		WHERE object_id = $1
		ORDER BY priority_direction_id`, id); err != nil {
		return nil, mapError(err)
	}

	return &obj, nil
}

func (r *objectRepository) Create(ctx context.Context, obj *domain.Object) (int64, error) {
	var id int64

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO objects (
				infrastructure_type_id, region_id, latitude, longitude,
				google_maps_url, website, logo_url, image_url, geocoding_status
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`,
			obj.InfrastructureTypeID, obj.RegionID, obj.Latitude, obj.Longitude,
			obj.GoogleMapsURL, obj.Website, obj.LogoURL, obj.ImageURL, string(obj.GeocodingStatus),
		).Scan(&id)
		if err != nil {
			return err
		}

		if err := insertTranslations(ctx, tx, id, obj.Translations); err != nil {
			return err
		}
		if err := insertPhones(ctx, tx, id, obj.Phones); err != nil {
			return err
		}
		if err := insertOrganizations(ctx, tx, id, obj.Organizations); err != nil {
			return err
		}
		return insertPriorityDirections(ctx, tx, id, obj.PriorityDirectionIDs)
	})
	if err != nil {
		r.logger.Error("Failed to create object", zap.Error(err))
		return 0, mapError(err)
	}

	r.logger.Debug("Object created", zap.Int64("id", id))
	return id, nil
}

func (r *objectRepository) Update(ctx context.Context, id int64, patch domain.ObjectPatch) error {
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var locked int64
		if err := tx.GetContext(ctx, &locked, `SELECT id FROM objects WHERE id = $1 FOR UPDATE`, id); err != nil {
			if apperrors.Is(mapError(err), apperrors.ErrRecordNotFound) {
				return apperrors.ErrObjectNotFound
			}
			return err
		}

		sets, args := patchAssignments(patch)
		args = append(args, id)
		query := fmt.Sprintf("UPDATE objects SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}

		if patch.Translations != nil {
			if _, err := tx.ExecContext(ctx, `DELETE FROM object_translations WHERE object_id = $1`, id); err != nil {
				return err
			}
			if err := insertTranslations(ctx, tx, id, *patch.Translations); err != nil {
				return err
			}
		}
		if patch.Phones != nil {
			if _, err := tx.ExecContext(ctx, `DELETE FROM phones WHERE object_id = $1`, id); err != nil {
				return err
			}
			if err := insertPhones(ctx, tx, id, *patch.Phones); err != nil {
				return err
			}
		}
		if patch.Organizations != nil {
			if _, err := tx.ExecContext(ctx, `DELETE FROM organizations WHERE object_id = $1`, id); err != nil {
				return err
			}
			if err := insertOrganizations(ctx, tx, id, *patch.Organizations); err != nil {
				return err
			}
		}
		if patch.PriorityDirectionIDs != nil {
			if _, err := tx.ExecContext(ctx, `DELETE FROM object_priority_directions WHERE object_id = $1`, id); err != nil {
				return err
			}
			if err := insertPriorityDirections(ctx, tx, id, *patch.PriorityDirectionIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrObjectNotFound) {
			r.logger.Error("Failed to update object", zap.Int64("id", id), zap.Error(err))
		}
		return mapError(err)
	}

	r.logger.Debug("Object updated", zap.Int64("id", id))
	return nil
}

// patchAssignments строит SET для скалярных полей патча; updated_at обновляется всегда
func patchAssignments(patch domain.ObjectPatch) ([]string, []interface{}) {
	var (
		sets []string
		args []interface{}
	)
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.InfrastructureTypeID != nil {
		set("infrastructure_type_id", *patch.InfrastructureTypeID)
	}
	if patch.RegionID != nil {
		set("region_id", *patch.RegionID)
	}
	if patch.Latitude != nil {
		set("latitude", *patch.Latitude)
	}
	if patch.Longitude != nil {
		set("longitude", *patch.Longitude)
	}
	if patch.GoogleMapsURL != nil {
		set("google_maps_url", nullIfEmpty(*patch.GoogleMapsURL))
	}
	if patch.Website != nil {
		set("website", nullIfEmpty(*patch.Website))
	}
	if patch.LogoURL != nil {
		set("logo_url", nullIfEmpty(*patch.LogoURL))
	}
	if patch.ImageURL != nil {
		set("image_url", nullIfEmpty(*patch.ImageURL))
	}
	if patch.GeocodingStatus != nil {
		set("geocoding_status", string(*patch.GeocodingStatus))
	}

	sets = append(sets, "updated_at = NOW()")
	return sets, args
}

// nullIfEmpty - пустая строка в патче очищает колонку
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func insertTranslations(ctx context.Context, tx *sqlx.Tx, objectID int64, translations []domain.ObjectTranslation) error {
	for _, t := range translations {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO object_translations (object_id, language_code, name, address, is_published)
			VALUES ($1, $2, $3, $4, $5)`,
			objectID, string(t.LanguageCode), t.Name, t.Address, t.IsPublished)
		if err != nil {
			return err
		}
	}
	return nil
}

func insertPhones(ctx context.Context, tx *sqlx.Tx, objectID int64, phones []domain.Phone) error {
	for _, p := range phones {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO phones (object_id, number, type, sort_order)
			VALUES ($1, $2, $3, $4)`,
			objectID, p.Number, string(p.Type), p.Order)
		if err != nil {
			return err
		}
	}
	return nil
}

func insertOrganizations(ctx context.Context, tx *sqlx.Tx, objectID int64, orgs []domain.Organization) error {
	for _, o := range orgs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO organizations (object_id, name, website)
			VALUES ($1, $2, $3)`,
			objectID, o.Name, o.Website)
		if err != nil {
			return err
		}
	}
	return nil
}

func insertPriorityDirections(ctx context.Context, tx *sqlx.Tx, objectID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO object_priority_directions (object_id, priority_direction_id)
		SELECT $1, UNNEST($2::bigint[])
		ON CONFLICT DO NOTHING`,
		objectID, pq.Array(ids))
	return err
}

func (r *objectRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM objects WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete object", zap.Int64("id", id), zap.Error(err))
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return apperrors.ErrObjectNotFound
	}

	r.logger.Debug("Object deleted", zap.Int64("id", id))
	return nil
}

func (r *objectRepository) SetPublished(ctx context.Context, ids []int64, lang domain.Language, isPublished bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE object_translations
		SET is_published = $1
		WHERE object_id = ANY($2) AND language_code = $3`,
		isPublished, pq.Array(ids), string(lang))
	if err != nil {
		r.logger.Error("Failed to update publication status", zap.Int("count", len(ids)), zap.Error(err))
		return 0, mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, mapError(err)
	}
	return affected, nil
}

func (r *objectRepository) UpdateGeocoding(ctx context.Context, id int64, coords *domain.Coordinate, status domain.GeocodingStatus) (bool, error) {
	var lat, lon *float64
	if coords != nil {
		lat, lon = &coords.Lat, &coords.Lon
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE objects
		SET latitude = COALESCE($2, latitude),
			longitude = COALESCE($3, longitude),
			geocoding_status = $4,
			updated_at = NOW()
		WHERE id = $1 AND geocoding_status <> 'MANUAL'`,
		id, lat, lon, string(status))
	if err != nil {
		r.logger.Error("Failed to store geocoding result", zap.Int64("id", id), zap.Error(err))
		return false, mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, mapError(err)
	}
	return affected > 0, nil
}
