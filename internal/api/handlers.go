package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ignite/newsletter-service/internal/domain"
	"github.com/ignite/newsletter-service/internal/pkg/httputil"
	"github.com/ignite/newsletter-service/internal/service/newsletter"
	"github.com/ignite/newsletter-service/internal/service/subscription"
)

// SubscriptionService is the part of the subscription workflow the HTTP
// layer needs.
type SubscriptionService interface {
	Create(ctx context.Context, name, email string) (*domain.Subscriber, error)
	Confirm(ctx context.Context, token string) (*domain.Subscriber, error)
}

// NewsletterService publishes an issue to every confirmed subscriber.
type NewsletterService interface {
	Publish(ctx context.Context, issue domain.NewsletterIssue) (*newsletter.BroadcastReport, error)
}

// IssueBuilder turns an RSS/Atom feed into a newsletter issue.
type IssueBuilder interface {
	IssueFromFeed(ctx context.Context, feedURL string, maxItems int) (*domain.NewsletterIssue, error)
}

// Handlers contains all HTTP handlers.
type Handlers struct {
	subscriptions SubscriptionService
	newsletters   NewsletterService
	feeds         IssueBuilder
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(subscriptions SubscriptionService, newsletters NewsletterService, feeds IssueBuilder) *Handlers {
	return &Handlers{
		subscriptions: subscriptions,
		newsletters:   newsletters,
		feeds:         feeds,
	}
}

// HandleCreateSubscription registers a new pending subscriber and sends the
// confirmation email.
//
//	POST /subscriptions
func (h *Handlers) HandleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.BadRequest(w, "invalid JSON body")
		return
	}

	if _, err := h.subscriptions.Create(r.Context(), body.Name, body.Email); err != nil {
		writeSubscriptionError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// HandleConfirmSubscription marks the subscriber behind the token as
// confirmed. Safe to call repeatedly with the same token.
//
//	GET /subscriptions/confirm?token=...
func (h *Handlers) HandleConfirmSubscription(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		httputil.BadRequest(w, "token query parameter is required")
		return
	}

	if _, err := h.subscriptions.Confirm(r.Context(), token); err != nil {
		writeSubscriptionError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// HandlePublishNewsletter broadcasts an issue to all confirmed subscribers.
//
//	POST /newsletters
func (h *Handlers) HandlePublishNewsletter(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title   string `json:"title"`
		Content struct {
			HTML string `json:"html"`
		} `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.BadRequest(w, "invalid JSON body")
		return
	}

	issue := domain.NewsletterIssue{
		Title:   body.Title,
		Content: domain.IssueContent{HTML: body.Content.HTML},
	}

	report, err := h.newsletters.Publish(r.Context(), issue)
	if err != nil {
		writeNewsletterError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, report)
}

// HandlePublishFromFeed builds an issue from an RSS/Atom feed and broadcasts
// it in one step.
//
//	POST /newsletters/feed
func (h *Handlers) HandlePublishFromFeed(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FeedURL  string `json:"feed_url"`
		MaxItems int    `json:"max_items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.BadRequest(w, "invalid JSON body")
		return
	}

	issue, err := h.feeds.IssueFromFeed(r.Context(), body.FeedURL, body.MaxItems)
	if err != nil {
		writeNewsletterError(w, err)
		return
	}

	report, err := h.newsletters.Publish(r.Context(), *issue)
	if err != nil {
		writeNewsletterError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, report)
}

// HandleHealthCheck is a bare liveness probe.
//
//	GET /health_check
func (h *Handlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// writeSubscriptionError maps subscription workflow errors to HTTP status
// codes. Validation problems are the caller's fault and carry the message
// through; everything else is a 500 with a generic body.
func writeSubscriptionError(w http.ResponseWriter, err error) {
	var serr *subscription.Error
	if errors.As(err, &serr) {
		switch serr.Kind {
		case subscription.KindValidation:
			httputil.BadRequest(w, serr.Error())
			return
		case subscription.KindNotFound:
			httputil.NotFound(w, "subscription token not found")
			return
		}
	}
	httputil.InternalError(w, err)
}

func writeNewsletterError(w http.ResponseWriter, err error) {
	var nerr *newsletter.Error
	if errors.As(err, &nerr) {
		switch nerr.Kind {
		case newsletter.KindValidation:
			httputil.BadRequest(w, nerr.Error())
			return
		case newsletter.KindFeed:
			httputil.Error(w, http.StatusBadGateway, "could not fetch or parse the feed")
			return
		}
	}
	httputil.InternalError(w, err)
}
