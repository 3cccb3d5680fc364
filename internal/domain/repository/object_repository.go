package repository

import (
	"context"

	"github.com/innovation-atlas/internal/domain"
)

// ObjectRepository определяет методы для работы с объектами инфраструктуры
type ObjectRepository interface {
	// List возвращает объекты, у которых есть перевод на filter.Lang, упорядоченные по id
	List(ctx context.Context, filter domain.ObjectFilter) ([]*domain.LocalizedObject, error)

	// GetLocalized возвращает объект в языке lang. ErrObjectNotFound, если объекта или перевода нет
	GetLocalized(ctx context.Context, id int64, lang domain.Language) (*domain.LocalizedObject, error)

	// GetByID возвращает объект со всеми переводами и дочерними записями
	GetByID(ctx context.Context, id int64) (*domain.Object, error)

	// Create сохраняет объект вместе с переводами, телефонами, организациями и направлениями
	Create(ctx context.Context, obj *domain.Object) (int64, error)

	// Update применяет частичное обновление; коллекции в патче заменяются целиком
	Update(ctx context.Context, id int64, patch domain.ObjectPatch) error

	// Delete удаляет объект каскадно. ErrObjectNotFound, если объекта нет
	Delete(ctx context.Context, id int64) error

	// SetPublished меняет флаг публикации переводов на lang у объектов ids, возвращает число изменённых переводов
	SetPublished(ctx context.Context, ids []int64, lang domain.Language, isPublished bool) (int64, error)

	// UpdateGeocoding записывает результат геокодирования, если статус объекта не MANUAL.
	// Возвращает false, если объект не найден или координаты заданы вручную
	UpdateGeocoding(ctx context.Context, id int64, coords *domain.Coordinate, status domain.GeocodingStatus) (bool, error)
}
