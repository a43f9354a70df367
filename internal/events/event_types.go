package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported auth-lifecycle event identifiers.
type EventType string

const (
	EventUserLogin      EventType = "user.login"
	EventUserLogout     EventType = "user.logout"
	EventTokenValidated EventType = "token.validated"
	EventTokenInvalid   EventType = "token.invalid"
)

// Subject returns the broker subject the event is published to.
func (t EventType) Subject() string {
	return "auth." + string(t)
}

// Identity carries the verified claims embedded in an event.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Event is an immutable auth-lifecycle fact handed to the publisher and then
// discarded by the core; no retry state is retained.
type Event struct {
	ID            string    `json:"event_id"`
	Type          EventType `json:"event_type"`
	User          *Identity `json:"user,omitempty"`
	UserID        string    `json:"user_id,omitempty"`
	RequestID     string    `json:"request_id,omitempty"`
	TargetService string    `json:"target_service,omitempty"`
	Reason        string    `json:"error,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewUserLogin builds a login fact for the authenticated identity.
func NewUserLogin(user Identity) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      EventUserLogin,
		User:      &user,
		Timestamp: time.Now().UTC(),
	}
}

// NewUserLogout builds a logout fact.
func NewUserLogout(userID string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      EventUserLogout,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}
}

// NewTokenValidated builds a successful cross-service validation fact.
func NewTokenValidated(user Identity, requestID, targetService string) Event {
	return Event{
		ID:            uuid.NewString(),
		Type:          EventTokenValidated,
		User:          &user,
		RequestID:     requestID,
		TargetService: targetService,
		Timestamp:     time.Now().UTC(),
	}
}

// NewTokenInvalid builds a failed cross-service validation fact. The reason is
// a coarse code, not the verification error detail.
func NewTokenInvalid(requestID, targetService, reason string) Event {
	return Event{
		ID:            uuid.NewString(),
		Type:          EventTokenInvalid,
		RequestID:     requestID,
		TargetService: targetService,
		Reason:        reason,
		Timestamp:     time.Now().UTC(),
	}
}
