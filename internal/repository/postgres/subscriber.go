// Package postgres implements the relational store adapters against
// PostgreSQL via database/sql.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignite/newsletter-service/internal/domain"
	"github.com/ignite/newsletter-service/internal/pkg/logger"
	"github.com/ignite/newsletter-service/internal/service/subscription"
)

// SubscriberRepo implements the subscriber store contracts of the
// subscription and newsletter services.
type SubscriberRepo struct{ db *sql.DB }

// NewSubscriberRepo creates a Postgres-backed subscriber repository.
func NewSubscriberRepo(db *sql.DB) *SubscriberRepo { return &SubscriberRepo{db: db} }

// Insert persists a new subscriber row.
func (r *SubscriberRepo) Insert(ctx context.Context, sub *domain.Subscriber) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscriptions (id, email, name, subscribed_at, status)
		VALUES ($1, $2, $3, $4, $5)
	`, sub.ID, sub.Email.String(), sub.Name.String(), sub.SubscribedAt, sub.Status.String())
	if err != nil {
		return fmt.Errorf("insert subscriber: %w", err)
	}
	return nil
}

// UpdateStatus sets the subscriber's status unconditionally and returns the
// updated row. Returns subscription.ErrSubscriberNotFound when no row
// matches.
func (r *SubscriberRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SubscriberStatus) (*domain.Subscriber, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE subscriptions
		SET status = $2
		WHERE id = $1
		RETURNING id, email, name, subscribed_at, status
	`, id, status.String())

	sub, err := scanSubscriber(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, subscription.ErrSubscriberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update subscriber status: %w", err)
	}
	return sub, nil
}

// ConfirmedEmails returns the email addresses of every confirmed subscriber.
// A stored address that no longer parses is skipped rather than failing the
// whole broadcast.
func (r *SubscriberRepo) ConfirmedEmails(ctx context.Context) ([]domain.SubscriberEmail, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT email
		FROM subscriptions
		WHERE status = $1
	`, domain.StatusConfirmed.String())
	if err != nil {
		return nil, fmt.Errorf("select confirmed emails: %w", err)
	}
	defer rows.Close()

	var out []domain.SubscriberEmail
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan confirmed email: %w", err)
		}
		email, err := domain.ParseSubscriberEmail(raw)
		if err != nil {
			logger.Warn("skipping unparseable stored email", "email", raw, "error", err)
			continue
		}
		out = append(out, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate confirmed emails: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscriber(row rowScanner) (*domain.Subscriber, error) {
	var (
		sub       domain.Subscriber
		rawEmail  string
		rawName   string
		rawStatus string
	)
	if err := row.Scan(&sub.ID, &rawEmail, &rawName, &sub.SubscribedAt, &rawStatus); err != nil {
		return nil, err
	}

	var err error
	if sub.Email, err = domain.ParseSubscriberEmail(rawEmail); err != nil {
		return nil, fmt.Errorf("stored email: %w", err)
	}
	if sub.Name, err = domain.ParseSubscriberName(rawName); err != nil {
		return nil, fmt.Errorf("stored name: %w", err)
	}
	if sub.Status, err = domain.ParseSubscriberStatus(rawStatus); err != nil {
		return nil, fmt.Errorf("stored status: %w", err)
	}
	return &sub, nil
}
