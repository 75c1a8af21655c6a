package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventUserRegistered = "user.registered"
	EventUserSignedIn   = "user.signed_in"
	EventUserSignedOut  = "user.signed_out"
)

func NewUserRegistered(userID int64, email string) BaseEvent {
	return identityEvent(EventUserRegistered, map[string]interface{}{
		"user_id": userID,
		"email":   email,
	})
}

func NewUserSignedIn(userID int64, email string, remembered bool) BaseEvent {
	return identityEvent(EventUserSignedIn, map[string]interface{}{
		"user_id":    userID,
		"email":      email,
		"remembered": remembered,
	})
}

func NewUserSignedOut() BaseEvent {
	return identityEvent(EventUserSignedOut, nil)
}

func identityEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}
