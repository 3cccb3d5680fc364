package domain

import (
	"time"
	"unicode/utf8"
)

const (
	// MaxPhonesPerObject - максимальное количество телефонов у объекта
	MaxPhonesPerObject = 5
	// MaxTextLength - ограничение длины названия и адреса
	MaxTextLength = 1000
)

// GeocodingStatus - статус определения координат объекта
type GeocodingStatus string

const (
	GeocodingPending GeocodingStatus = "PENDING"
	GeocodingSuccess GeocodingStatus = "SUCCESS"
	GeocodingFailed  GeocodingStatus = "FAILED"
	GeocodingManual  GeocodingStatus = "MANUAL"
)

func (s GeocodingStatus) IsValid() bool {
	switch s {
	case GeocodingPending, GeocodingSuccess, GeocodingFailed, GeocodingManual:
		return true
	}
	return false
}

// PhoneType - тип телефонного номера
type PhoneType string

const (
	PhoneMain       PhoneType = "MAIN"
	PhoneAdditional PhoneType = "ADDITIONAL"
	PhoneFax        PhoneType = "FAX"
	PhoneMobile     PhoneType = "MOBILE"
)

func (t PhoneType) IsValid() bool {
	switch t {
	case PhoneMain, PhoneAdditional, PhoneFax, PhoneMobile:
		return true
	}
	return false
}

// Object - объект инновационной инфраструктуры со всеми переводами
type Object struct {
	ID                   int64           `db:"id"`
	InfrastructureTypeID int64           `db:"infrastructure_type_id"`
	RegionID             int64           `db:"region_id"`
	Latitude             *float64        `db:"latitude"`
	Longitude            *float64        `db:"longitude"`
	GoogleMapsURL        *string         `db:"google_maps_url"`
	Website              *string         `db:"website"`
	LogoURL              *string         `db:"logo_url"`
	ImageURL             *string         `db:"image_url"`
	GeocodingStatus      GeocodingStatus `db:"geocoding_status"`
	CreatedAt            time.Time       `db:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at"`

	Translations         []ObjectTranslation `db:"-"`
	Phones               []Phone             `db:"-"`
	Organizations        []Organization      `db:"-"`
	PriorityDirectionIDs []int64             `db:"-"`
}

// HasCoordinates - заданы ли обе координаты
func (o *Object) HasCoordinates() bool {
	return o.Latitude != nil && o.Longitude != nil
}

// Translation возвращает перевод на язык lang
func (o *Object) Translation(lang Language) (ObjectTranslation, bool) {
	for _, t := range o.Translations {
		if t.LanguageCode == lang {
			return t, true
		}
	}
	return ObjectTranslation{}, false
}

// PreferredLanguage - lang, если есть такой перевод, иначе первый по приоритету из имеющихся
func (o *Object) PreferredLanguage(lang Language) (Language, bool) {
	if _, ok := o.Translation(lang); ok {
		return lang, true
	}
	for _, l := range SupportedLanguages {
		if _, ok := o.Translation(l); ok {
			return l, true
		}
	}
	return "", false
}

// ObjectTranslation - языковая версия названия и адреса
type ObjectTranslation struct {
	ID           int64    `db:"id"`
	ObjectID     int64    `db:"object_id"`
	LanguageCode Language `db:"language_code"`
	Name         string   `db:"name"`
	Address      string   `db:"address"`
	IsPublished  bool     `db:"is_published"`
}

// Phone - телефон объекта, Order - позиция в списке
type Phone struct {
	ID       int64     `json:"id" db:"id"`
	ObjectID int64     `json:"-" db:"object_id"`
	Number   string    `json:"number" db:"number"`
	Type     PhoneType `json:"type" db:"type"`
	Order    int       `json:"-" db:"sort_order"`
}

// Organization - организация, размещённая на объекте
type Organization struct {
	ID       int64   `json:"id" db:"id"`
	ObjectID int64   `json:"-" db:"object_id"`
	Name     string  `json:"name" db:"name"`
	Website  *string `json:"website,omitempty" db:"website"`
}

// LocalizedObject - объект, разрешённый в один язык, с вложенными справочниками
type LocalizedObject struct {
	Object
	Language           Language
	Name               string
	Address            string
	IsPublished        bool
	InfrastructureType InfrastructureTypeRef
	Region             RegionRef
	PriorityDirections []PriorityDirectionRef
}

// InfrastructureTypeRef - краткая форма типа инфраструктуры внутри объекта
type InfrastructureTypeRef struct {
	ID    int64  `json:"id" db:"id"`
	Icon  string `json:"icon" db:"icon"`
	Color string `json:"color" db:"color"`
	Name  string `json:"name" db:"name"`
}

// RegionRef - краткая форма региона внутри объекта
type RegionRef struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// PriorityDirectionRef - краткая форма приоритетного направления
type PriorityDirectionRef struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// ObjectFilter - параметры выборки объектов
type ObjectFilter struct {
	Search               string
	InfrastructureTypeID *int64
	RegionID             *int64
	PriorityDirectionIDs []int64
	IsPublished          *bool
	GeocodingStatus      *GeocodingStatus
	Lang                 Language
}

// ObjectPatch - частичное обновление объекта. nil означает "не менять".
// Непустой указатель на срез заменяет коллекцию целиком (пустой срез очищает её).
type ObjectPatch struct {
	InfrastructureTypeID *int64
	RegionID             *int64
	Latitude             *float64
	Longitude            *float64
	GoogleMapsURL        *string
	Website              *string
	LogoURL              *string
	ImageURL             *string
	GeocodingStatus      *GeocodingStatus

	Translations         *[]ObjectTranslation
	Phones               *[]Phone
	Organizations        *[]Organization
	PriorityDirectionIDs *[]int64
}

// TruncateText обрезает строку до MaxTextLength символов (не байт)
func TruncateText(s string) string {
	if utf8.RuneCountInString(s) <= MaxTextLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxTextLength])
}

// HasPublishedTranslation - есть ли хотя бы один опубликованный перевод
func HasPublishedTranslation(translations []ObjectTranslation) bool {
	for _, t := range translations {
		if t.IsPublished {
			return true
		}
	}
	return false
}
