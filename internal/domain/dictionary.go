package domain

// InfrastructureType - тип объекта (технопарк, бизнес-инкубатор, IT-хаб, СЭЗ)
type InfrastructureType struct {
	ID           int64  `json:"id" db:"id"`
	Icon         string `json:"icon" db:"icon"`
	Color        string `json:"color" db:"color"`
	Name         string `json:"name" db:"name"`
	ObjectsCount int    `json:"objectsCount" db:"objects_count"`
	IsActive     bool   `json:"isActive" db:"is_active"`
	Order        int    `json:"order" db:"sort_order"`
}

// Region - регион; используется один уровень вложенности
type Region struct {
	ID           int64    `json:"id" db:"id"`
	Code         *string  `json:"code,omitempty" db:"code"`
	ParentID     *int64   `json:"-" db:"parent_id"`
	Name         string   `json:"name" db:"name"`
	ObjectsCount int      `json:"objectsCount" db:"objects_count"`
	Children     []Region `json:"children" db:"-"`
}

// PriorityDirection - приоритетное направление (без переводов)
type PriorityDirection struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	ObjectsCount int    `json:"objectsCount" db:"objects_count"`
	IsActive     bool   `json:"isActive" db:"is_active"`
	Order        int    `json:"order" db:"sort_order"`
}

// Типы результатов поиска по справочникам
const (
	DictionaryHitInfrastructureType = "infrastructureType"
	DictionaryHitRegion             = "region"
	DictionaryHitPriorityDirection  = "priorityDirection"

	// DictionarySearchLimit - лимит результатов по каждому справочнику
	DictionarySearchLimit = 5
	// DictionarySearchMinQuery - минимальная длина запроса автокомплита
	DictionarySearchMinQuery = 2
)

// DictionaryHit - элемент автокомплита
type DictionaryHit struct {
	ID    int64   `json:"id" db:"id"`
	Type  string  `json:"type" db:"-"`
	Name  string  `json:"name" db:"name"`
	Icon  *string `json:"icon,omitempty" db:"icon"`
	Color *string `json:"color,omitempty" db:"color"`
}

// DictionarySearchResult - результат поиска по всем справочникам
type DictionarySearchResult struct {
	InfrastructureTypes []DictionaryHit `json:"infrastructureTypes"`
	Regions             []DictionaryHit `json:"regions"`
	PriorityDirections  []DictionaryHit `json:"priorityDirections"`
}

// EmptyDictionarySearchResult - пустой результат с непустыми срезами (для JSON [])
func EmptyDictionarySearchResult() *DictionarySearchResult {
	return &DictionarySearchResult{
		InfrastructureTypes: []DictionaryHit{},
		Regions:             []DictionaryHit{},
		PriorityDirections:  []DictionaryHit{},
	}
}
