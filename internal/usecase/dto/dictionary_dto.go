package dto

// FindOrCreatePriorityDirectionRequest - поиск направления по имени или его создание
type FindOrCreatePriorityDirectionRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type FindOrCreatePriorityDirectionResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Created bool   `json:"created"`
}
