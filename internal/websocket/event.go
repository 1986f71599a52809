package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the kind of change an event announces
type EventType string

const (
	EventTypeCreated  EventType = "created"
	EventTypeUpdated  EventType = "updated"
	EventTypeDeleted  EventType = "deleted"
	EventTypeAdjusted EventType = "adjusted"
)

// EntityType represents the entity an event is about
type EntityType string

const (
	EntityTypeCustomer  EntityType = "customer"
	EntityTypeInvoice   EntityType = "invoice"
	EntityTypePayment   EntityType = "payment"
	EntityTypeItem      EntityType = "item"
	EntityTypeStaffPing EntityType = "staff_ping"
)

// Event is a message pushed to connected clients so they can refetch and
// recompute derived views (statements, cashbook) locally.
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "invoice.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "invoice"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
