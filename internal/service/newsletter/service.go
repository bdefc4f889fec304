package newsletter

import (
	"context"
	"fmt"

	"github.com/ignite/newsletter-service/internal/domain"
	"github.com/ignite/newsletter-service/internal/pkg/logger"
)

// Service orchestrates newsletter broadcasts. It is safe for concurrent use.
type Service struct {
	store  SubscriberStore
	sender EmailSender
}

// NewService creates a newsletter service.
func NewService(store SubscriberStore, sender EmailSender) *Service {
	return &Service{store: store, sender: sender}
}

// BroadcastReport summarizes one fan-out.
type BroadcastReport struct {
	Recipients int `json:"recipients"`
	Delivered  int `json:"delivered"`
	Failed     int `json:"failed"`
}

// Publish sends one issue to every confirmed subscriber. An empty recipient
// set succeeds without touching the transport. Recipients are dispatched one
// by one; every recipient is attempted even when earlier sends fail, and any
// failure yields an email-delivery error carrying the failure count.
func (s *Service) Publish(ctx context.Context, issue domain.NewsletterIssue) (*BroadcastReport, error) {
	if issue.Title == "" {
		return nil, wrapErr(KindValidation, "invalid newsletter issue",
			domain.NewValidationError("newsletter title must not be empty"))
	}
	if issue.Content.HTML == "" {
		return nil, wrapErr(KindValidation, "invalid newsletter issue",
			domain.NewValidationError("newsletter html content must not be empty"))
	}

	emails, err := s.store.ConfirmedEmails(ctx)
	if err != nil {
		logger.Error("query confirmed subscribers failed", "error", err)
		return nil, wrapErr(KindPersistence, "query confirmed subscribers", err)
	}

	report := &BroadcastReport{Recipients: len(emails)}
	if len(emails) == 0 {
		logger.Info("broadcast skipped, no confirmed subscribers", "title", issue.Title)
		return report, nil
	}

	var firstErr error
	for _, email := range emails {
		if err := s.sender.Send(ctx, []domain.SubscriberEmail{email}, issue.Title, issue.Content.HTML); err != nil {
			report.Failed++
			if firstErr == nil {
				firstErr = err
			}
			logger.Error("broadcast send failed", "email", email.String(), "error", err)
			continue
		}
		report.Delivered++
	}

	logger.Info("broadcast finished", "title", issue.Title,
		"recipients", report.Recipients, "delivered", report.Delivered, "failed", report.Failed)

	if report.Failed > 0 {
		msg := fmt.Sprintf("broadcast delivered %d of %d recipients", report.Delivered, report.Recipients)
		return report, wrapErr(KindEmailDelivery, msg, firstErr)
	}
	return report, nil
}
