package subscription

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignite/newsletter-service/internal/domain"
)

// SubscriberStore defines the relational-store contract this workflow
// consumes.
type SubscriberStore interface {
	// Insert persists a new subscriber row.
	Insert(ctx context.Context, sub *domain.Subscriber) error

	// UpdateStatus sets the subscriber's status and returns the updated row.
	// Returns ErrSubscriberNotFound if no row matches the id.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SubscriberStatus) (*domain.Subscriber, error)
}

// TokenStore defines the ephemeral token-mapping contract.
type TokenStore interface {
	// Store records token → subscriberID.
	Store(ctx context.Context, token string, subscriberID uuid.UUID) error

	// Lookup resolves a token to its subscriber id. Returns ErrTokenNotFound
	// for unknown, expired, or unusable mappings.
	Lookup(ctx context.Context, token string) (uuid.UUID, error)
}

// EmailSender delivers one rendered message to one or more recipients.
type EmailSender interface {
	Send(ctx context.Context, recipients []domain.SubscriberEmail, subject, htmlBody string) error
}
