package newsletter

import (
	"context"

	"github.com/ignite/newsletter-service/internal/domain"
)

// SubscriberStore defines the relational-store contract the broadcast
// consumes: the confirmed recipient list and nothing else.
type SubscriberStore interface {
	ConfirmedEmails(ctx context.Context) ([]domain.SubscriberEmail, error)
}

// EmailSender delivers one rendered message to one or more recipients.
type EmailSender interface {
	Send(ctx context.Context, recipients []domain.SubscriberEmail, subject, htmlBody string) error
}
