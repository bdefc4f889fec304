package domain

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is a single newsletter recipient. ID and SubscribedAt are set
// once at creation; only Status changes afterwards (pending_confirmation →
// confirmed, driven by the confirmation workflow).
type Subscriber struct {
	ID           uuid.UUID        `json:"id"`
	Email        SubscriberEmail  `json:"email"`
	Name         SubscriberName   `json:"name"`
	Status       SubscriberStatus `json:"status"`
	SubscribedAt time.Time        `json:"subscribed_at"`
}

// NewSubscriber builds a pending subscriber with a fresh UUID and the
// current UTC time.
func NewSubscriber(name SubscriberName, email SubscriberEmail) *Subscriber {
	return &Subscriber{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		Status:       StatusPending,
		SubscribedAt: time.Now().UTC(),
	}
}
