package dto

import (
	"time"

	"github.com/innovation-atlas/internal/domain"
)

// TranslationInput - языковая версия объекта в запросе
type TranslationInput struct {
	LanguageCode string `json:"languageCode" validate:"required,oneof=ru kz en"`
	Name         string `json:"name" validate:"required,max=1000"`
	Address      string `json:"address" validate:"required,max=1000"`
	IsPublished  bool   `json:"isPublished"`
}

// PhoneInput - телефон в запросе; тип по умолчанию MAIN
type PhoneInput struct {
	Number string `json:"number" validate:"required,max=50,phone"`
	Type   string `json:"type" validate:"omitempty,oneof=MAIN ADDITIONAL FAX MOBILE"`
}

type OrganizationInput struct {
	Name    string  `json:"name" validate:"required,max=500"`
	Website *string `json:"website" validate:"omitempty,url"`
}

// CreateObjectRequest - запрос на создание объекта
type CreateObjectRequest struct {
	InfrastructureTypeID int64               `json:"infrastructureTypeId" validate:"required,gt=0"`
	RegionID             int64               `json:"regionId" validate:"required,gt=0"`
	Latitude             *float64            `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude            *float64            `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	GoogleMapsURL        *string             `json:"googleMapsUrl" validate:"omitempty,url"`
	Website              *string             `json:"website" validate:"omitempty,url"`
	LogoURL              *string             `json:"logoUrl" validate:"omitempty,url"`
	ImageURL             *string             `json:"imageUrl" validate:"omitempty,url"`
	GeocodingStatus      string              `json:"geocodingStatus" validate:"omitempty,oneof=PENDING SUCCESS FAILED MANUAL"`
	Translations         []TranslationInput  `json:"translations" validate:"required,min=1,published,dive"`
	Phones               []PhoneInput        `json:"phones" validate:"omitempty,max=5,dive"`
	PriorityDirections   []int64             `json:"priorityDirections" validate:"omitempty,dive,gt=0"`
	Organizations        []OrganizationInput `json:"organizations" validate:"omitempty,dive"`
}

// UpdateObjectRequest - частичное обновление. Отсутствующие поля не меняются,
// переданные коллекции заменяются целиком.
type UpdateObjectRequest struct {
	InfrastructureTypeID *int64               `json:"infrastructureTypeId" validate:"omitempty,gt=0"`
	RegionID             *int64               `json:"regionId" validate:"omitempty,gt=0"`
	Latitude             *float64             `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude            *float64             `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	GoogleMapsURL        *string              `json:"googleMapsUrl" validate:"omitempty,url|eq="`
	Website              *string              `json:"website" validate:"omitempty,url|eq="`
	LogoURL              *string              `json:"logoUrl" validate:"omitempty,url|eq="`
	ImageURL             *string              `json:"imageUrl" validate:"omitempty,url|eq="`
	GeocodingStatus      *string              `json:"geocodingStatus" validate:"omitempty,oneof=PENDING SUCCESS FAILED MANUAL"`
	Translations         *[]TranslationInput  `json:"translations" validate:"omitnil,min=1,dive"`
	Phones               *[]PhoneInput        `json:"phones" validate:"omitnil,max=5,dive"`
	PriorityDirections   *[]int64             `json:"priorityDirections" validate:"omitnil,dive,gt=0"`
	Organizations        *[]OrganizationInput `json:"organizations" validate:"omitnil,dive"`
}

// ObjectListQuery - параметры фильтрации списка объектов
type ObjectListQuery struct {
	Search               string  `json:"search" query:"search" validate:"max=200"`
	InfrastructureTypeID *int64  `json:"infrastructureTypeId" query:"infrastructureTypeId" validate:"omitempty,gt=0"`
	RegionID             *int64  `json:"regionId" query:"regionId" validate:"omitempty,gt=0"`
	PriorityDirections   []int64 `json:"priorityDirections" query:"priorityDirections" validate:"omitempty,dive,gt=0"`
	IsPublished          *bool   `json:"isPublished" query:"isPublished"`
	GeocodingStatus      string  `json:"geocodingStatus" query:"geocodingStatus" validate:"omitempty,oneof=PENDING SUCCESS FAILED MANUAL"`
	Lang                 string  `json:"lang" query:"lang" validate:"omitempty,oneof=ru kz en"`
}

// ToFilter переводит параметры запроса в фильтр репозитория
func (q ObjectListQuery) ToFilter() domain.ObjectFilter {
	filter := domain.ObjectFilter{
		Search:               q.Search,
		InfrastructureTypeID: q.InfrastructureTypeID,
		RegionID:             q.RegionID,
		PriorityDirectionIDs: q.PriorityDirections,
		IsPublished:          q.IsPublished,
		Lang:                 domain.ParseLanguage(q.Lang),
	}
	if q.GeocodingStatus != "" {
		status := domain.GeocodingStatus(q.GeocodingStatus)
		filter.GeocodingStatus = &status
	}
	return filter
}

// Действия массовой операции
const (
	BulkActionActivate   = "activate"
	BulkActionDeactivate = "deactivate"
	BulkActionDelete     = "delete"
)

// BulkOperationRequest - массовая публикация, снятие с публикации или удаление
type BulkOperationRequest struct {
	IDs    []int64 `json:"ids" validate:"required,min=1,dive,gt=0"`
	Action string  `json:"action" validate:"required,oneof=activate deactivate delete"`
	Lang   string  `json:"lang" validate:"omitempty,oneof=ru kz en"`
}

type BulkOperationResponse struct {
	Action   string `json:"action"`
	Affected int64  `json:"affected"`
}

// ObjectResponse - объект, разрешённый в один язык
type ObjectResponse struct {
	ID                 int64                         `json:"id"`
	Language           string                        `json:"lang"`
	InfrastructureType domain.InfrastructureTypeRef  `json:"infrastructureType"`
	Region             domain.RegionRef              `json:"region"`
	Latitude           *float64                      `json:"latitude"`
	Longitude          *float64                      `json:"longitude"`
	GoogleMapsURL      *string                       `json:"googleMapsUrl"`
	Website            *string                       `json:"website"`
	LogoURL            *string                       `json:"logoUrl"`
	ImageURL           *string                       `json:"imageUrl"`
	GeocodingStatus    string                        `json:"geocodingStatus"`
	Name               string                        `json:"name"`
	Address            string                        `json:"address"`
	IsPublished        bool                          `json:"isPublished"`
	Phones             []domain.Phone                `json:"phones"`
	PriorityDirections []domain.PriorityDirectionRef `json:"priorityDirections"`
	Organizations      []domain.Organization         `json:"organizations"`
	CreatedAt          time.Time                     `json:"createdAt"`
	UpdatedAt          time.Time                     `json:"updatedAt"`
}

// NewObjectResponse собирает ответ из локализованного объекта. Коллекции всегда непустые срезы.
func NewObjectResponse(o *domain.LocalizedObject) ObjectResponse {
	resp := ObjectResponse{
		ID:                 o.ID,
		Language:           o.Language.String(),
		InfrastructureType: o.InfrastructureType,
		Region:             o.Region,
		Latitude:           o.Latitude,
		Longitude:          o.Longitude,
		GoogleMapsURL:      o.GoogleMapsURL,
		Website:            o.Website,
		LogoURL:            o.LogoURL,
		ImageURL:           o.ImageURL,
		GeocodingStatus:    string(o.GeocodingStatus),
		Name:               o.Name,
		Address:            o.Address,
		IsPublished:        o.IsPublished,
		Phones:             o.Phones,
		PriorityDirections: o.PriorityDirections,
		Organizations:      o.Organizations,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
	if resp.Phones == nil {
		resp.Phones = []domain.Phone{}
	}
	if resp.PriorityDirections == nil {
		resp.PriorityDirections = []domain.PriorityDirectionRef{}
	}
	if resp.Organizations == nil {
		resp.Organizations = []domain.Organization{}
	}
	return resp
}

// NewObjectListResponse - список ответов в том же порядке
func NewObjectListResponse(objects []*domain.LocalizedObject) []ObjectResponse {
	out := make([]ObjectResponse, 0, len(objects))
	for _, o := range objects {
		out = append(out, NewObjectResponse(o))
	}
	return out
}
