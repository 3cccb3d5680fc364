package domain

import "time"

// Stream names
const (
	StreamObjectGeocode = "stream:objects:geocode"
)

// GeocodeRequestedEvent - запрос на определение координат объекта
type GeocodeRequestedEvent struct {
	ObjectID    int64     `json:"object_id"`
	Attempt     int       `json:"attempt,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// Retry - следующая попытка того же запроса
func (e GeocodeRequestedEvent) Retry(now time.Time) GeocodeRequestedEvent {
	return GeocodeRequestedEvent{
		ObjectID:    e.ObjectID,
		Attempt:     e.Attempt + 1,
		RequestedAt: now,
	}
}

// Exhausted - исчерпаны ли попытки при лимите maxRetries
func (e GeocodeRequestedEvent) Exhausted(maxRetries int) bool {
	return e.Attempt+1 >= maxRetries
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
