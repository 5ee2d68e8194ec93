package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered      EventType = "user_registered"
	EventUserPasswordChanged EventType = "user_password_changed"
	EventUserProfileUpdated  EventType = "user_profile_updated"
	EventResourceCreated     EventType = "resource_created"
	EventResourceUpdated     EventType = "resource_updated"
	EventResourceDeleted     EventType = "resource_deleted"
)

// Event represents a domain event emitted by services. Collection names the
// store collection the event concerns ("users", "events", "coupons", ...),
// SubjectID the affected document.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	Collection string      `json:"collection"`
	SubjectID  string      `json:"subject_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// New builds an event with a fresh id and timestamp.
func New(eventType EventType, collection, subjectID string, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Collection: collection,
		SubjectID:  subjectID,
		Timestamp:  time.Now(),
		Payload:    payload,
	}
}

// UserRegisteredPayload carries the registered account's email.
type UserRegisteredPayload struct {
	Email string `json:"email"`
}

// ResourceChangedPayload summarizes a CRUD mutation.
type ResourceChangedPayload struct {
	Document interface{} `json:"document,omitempty"`
}
