package domain

import "github.com/google/uuid"

// Stream names
const (
	StreamVenueAdd  = "stream:venue:add"
	StreamVenueDone = "stream:venue:done"
)

// StreamMessage - сообщение из Redis stream, Data содержит JSON из поля "data"
type StreamMessage struct {
	ID   string
	Data string
}

// VenueAddEvent - входящее событие на регистрацию точки
type VenueAddEvent struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Lat  float64   `json:"lat"`
	Lon  float64   `json:"lon"`
}

// VenueDoneEvent - результат регистрации
type VenueDoneEvent struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Error string    `json:"error,omitempty"`
}
