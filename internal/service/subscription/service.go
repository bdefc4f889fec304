package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/osteele/liquid"

	"github.com/ignite/newsletter-service/internal/domain"
	"github.com/ignite/newsletter-service/internal/pkg/logger"
)

const confirmationSubject = "Welcome to our newsletter"

const confirmationBody = `<div>
    <h1>Welcome to our newsletter!</h1>
    <p>Click <a href="{{ confirmation_link }}">here</a> to confirm your subscription!</p>
</div>`

// Service orchestrates subscriber creation and confirmation. It is safe for
// concurrent use. Dependencies are injected at construction, never reached
// through shared globals.
type Service struct {
	store      SubscriberStore
	tokens     TokenStore
	sender     EmailSender
	baseURL    string
	confirmTpl *liquid.Template
}

// NewService creates a subscription service. baseURL is the externally
// reachable application root used to build confirmation links.
func NewService(store SubscriberStore, tokens TokenStore, sender EmailSender, baseURL string) *Service {
	tpl, err := liquid.NewEngine().ParseString(confirmationBody)
	if err != nil {
		panic(fmt.Sprintf("subscription: parse confirmation template: %v", err))
	}
	return &Service{
		store:      store,
		tokens:     tokens,
		sender:     sender,
		baseURL:    baseURL,
		confirmTpl: tpl,
	}
}

// Create runs the subscription-creation workflow: validate → persist pending
// → issue token → store mapping → send confirmation email.
//
// The steps are not transactional. A token-store failure leaves a pending row
// without a usable token; its token mapping would have expired anyway, and
// the row is invisible to broadcasts, so no compensation is attempted. A send
// failure leaves row and token in place and fails the request.
func (s *Service) Create(ctx context.Context, name, email string) (*domain.Subscriber, error) {
	subName, err := domain.ParseSubscriberName(name)
	if err != nil {
		return nil, wrapErr(KindValidation, "invalid subscriber name", err)
	}
	subEmail, err := domain.ParseSubscriberEmail(email)
	if err != nil {
		return nil, wrapErr(KindValidation, "invalid subscriber email", err)
	}

	sub := domain.NewSubscriber(subName, subEmail)
	if err := s.store.Insert(ctx, sub); err != nil {
		logger.Error("insert subscriber failed", "email", email, "error", err)
		return nil, wrapErr(KindPersistence, "insert subscriber", err)
	}

	token := domain.GenerateSubscriptionToken()
	if err := s.tokens.Store(ctx, token, sub.ID); err != nil {
		logger.Error("store subscription token failed",
			"subscriber_id", sub.ID, "error", err)
		return nil, wrapErr(KindTokenStore, "store subscription token", err)
	}

	body, err := s.confirmationEmailBody(token)
	if err != nil {
		return nil, wrapErr(KindEmailDelivery, "render confirmation email", err)
	}
	if err := s.sender.Send(ctx, []domain.SubscriberEmail{sub.Email}, confirmationSubject, body); err != nil {
		logger.Error("send confirmation email failed",
			"subscriber_id", sub.ID, "email", email, "error", err)
		return nil, wrapErr(KindEmailDelivery, "send confirmation email", err)
	}

	logger.Info("subscriber created", "subscriber_id", sub.ID, "email", email)
	return sub, nil
}

// Confirm resolves a confirmation token and transitions the subscriber to
// confirmed. The status update is unconditional, so confirming an
// already-confirmed subscriber succeeds again.
func (s *Service) Confirm(ctx context.Context, token string) (*domain.Subscriber, error) {
	id, err := s.tokens.Lookup(ctx, token)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return nil, wrapErr(KindNotFound, "resolve subscription token", err)
		}
		logger.Error("token lookup failed", "error", err)
		return nil, wrapErr(KindTokenStore, "resolve subscription token", err)
	}

	sub, err := s.store.UpdateStatus(ctx, id, domain.StatusConfirmed)
	if err != nil {
		if errors.Is(err, ErrSubscriberNotFound) {
			// A mapping pointing at a missing row is indistinguishable from an
			// unknown token as far as the caller is concerned.
			logger.Warn("token mapping points at missing subscriber", "subscriber_id", id)
			return nil, wrapErr(KindNotFound, "confirm subscriber", err)
		}
		logger.Error("confirm subscriber failed", "subscriber_id", id, "error", err)
		return nil, wrapErr(KindPersistence, "confirm subscriber", err)
	}

	logger.Info("subscriber confirmed", "subscriber_id", sub.ID)
	return sub, nil
}

func (s *Service) confirmationEmailBody(token string) (string, error) {
	link := fmt.Sprintf("%s/subscriptions/confirm?token=%s", s.baseURL, token)
	return s.confirmTpl.RenderString(liquid.Bindings{"confirmation_link": link})
}
