package subscription

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/ignite/newsletter-service/internal/domain"
)

// mockStore is an in-memory SubscriberStore.
type mockStore struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]*domain.Subscriber
	insertErr error
	updateErr error
}

func newMockStore() *mockStore {
	return &mockStore{rows: make(map[uuid.UUID]*domain.Subscriber)}
}

func (m *mockStore) Insert(_ context.Context, sub *domain.Subscriber) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *sub
	m.rows[sub.ID] = &cp
	return nil
}

func (m *mockStore) UpdateStatus(_ context.Context, id uuid.UUID, status domain.SubscriberStatus) (*domain.Subscriber, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.rows[id]
	if !ok {
		return nil, ErrSubscriberNotFound
	}
	sub.Status = status
	cp := *sub
	return &cp, nil
}

// mockTokens is an in-memory TokenStore.
type mockTokens struct {
	mu       sync.Mutex
	mappings map[string]uuid.UUID
	storeErr error
}

func newMockTokens() *mockTokens {
	return &mockTokens{mappings: make(map[string]uuid.UUID)}
}

func (m *mockTokens) Store(_ context.Context, token string, id uuid.UUID) error {
	if m.storeErr != nil {
		return m.storeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mappings[token] = id
	return nil
}

func (m *mockTokens) Lookup(_ context.Context, token string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.mappings[token]
	if !ok {
		return uuid.Nil, ErrTokenNotFound
	}
	return id, nil
}

// mockSender records sent emails.
type mockSender struct {
	mu      sync.Mutex
	sent    []sentEmail
	sendErr error
}

type sentEmail struct {
	recipients []domain.SubscriberEmail
	subject    string
	body       string
}

func (m *mockSender) Send(_ context.Context, recipients []domain.SubscriberEmail, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentEmail{recipients: recipients, subject: subject, body: body})
	return nil
}

func newTestService() (*Service, *mockStore, *mockTokens, *mockSender) {
	store := newMockStore()
	tokens := newMockTokens()
	sender := &mockSender{}
	svc := NewService(store, tokens, sender, "https://newsletter.test")
	return svc, store, tokens, sender
}

var linkPattern = regexp.MustCompile(`href="([^"]+)"`)

func TestCreate_PersistsPendingSubscriber(t *testing.T) {
	svc, store, tokens, sender := newTestService()

	sub, err := svc.Create(context.Background(), "Frank", "frank@test.com")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if sub.Status != domain.StatusPending {
		t.Errorf("Status = %q, want %q", sub.Status, domain.StatusPending)
	}
	if sub.Email.String() != "frank@test.com" {
		t.Errorf("Email = %q, want %q", sub.Email, "frank@test.com")
	}
	if sub.SubscribedAt.IsZero() {
		t.Error("SubscribedAt was not set")
	}
	if _, ok := store.rows[sub.ID]; !ok {
		t.Error("subscriber row was not persisted")
	}
	if len(tokens.mappings) != 1 {
		t.Errorf("len(token mappings) = %d, want 1", len(tokens.mappings))
	}
	if len(sender.sent) != 1 {
		t.Fatalf("len(sent emails) = %d, want 1", len(sender.sent))
	}
}

func TestCreate_ConfirmationEmailContainsOneTokenLink(t *testing.T) {
	svc, _, tokens, sender := newTestService()

	if _, err := svc.Create(context.Background(), "Frank", "frank@test.com"); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	msg := sender.sent[0]
	if msg.subject != "Welcome to our newsletter" {
		t.Errorf("subject = %q", msg.subject)
	}
	links := linkPattern.FindAllStringSubmatch(msg.body, -1)
	if len(links) != 1 {
		t.Fatalf("confirmation email contains %d links, want exactly 1", len(links))
	}
	link := links[0][1]
	if !strings.HasPrefix(link, "https://newsletter.test/subscriptions/confirm?token=") {
		t.Errorf("unexpected confirmation link %q", link)
	}
	token := strings.TrimPrefix(link, "https://newsletter.test/subscriptions/confirm?token=")
	if _, ok := tokens.mappings[token]; !ok {
		t.Errorf("link token %q is not in the token store", token)
	}
}

func TestCreate_SameEmailTwiceProducesIndependentRows(t *testing.T) {
	svc, store, tokens, sender := newTestService()

	first, err := svc.Create(context.Background(), "Frank", "frank@test.com")
	if err != nil {
		t.Fatalf("first Create() error: %v", err)
	}
	second, err := svc.Create(context.Background(), "Frank", "frank@test.com")
	if err != nil {
		t.Fatalf("second Create() error: %v", err)
	}

	if first.ID == second.ID {
		t.Error("repeat subscriptions must get distinct ids")
	}
	if len(store.rows) != 2 {
		t.Errorf("len(rows) = %d, want 2 independent pending rows", len(store.rows))
	}
	for _, sub := range store.rows {
		if sub.Status != domain.StatusPending {
			t.Errorf("row %s status = %q, want pending", sub.ID, sub.Status)
		}
	}
	if len(tokens.mappings) != 2 {
		t.Errorf("len(token mappings) = %d, want 2 independent tokens", len(tokens.mappings))
	}
	if len(sender.sent) != 2 {
		t.Errorf("len(sent emails) = %d, want 2", len(sender.sent))
	}
}

func TestCreate_InvalidName(t *testing.T) {
	svc, store, tokens, sender := newTestService()

	_, err := svc.Create(context.Background(), "", "frank@test.com")
	assertKind(t, err, KindValidation)

	if len(store.rows) != 0 {
		t.Error("no row should be persisted on validation failure")
	}
	if len(tokens.mappings) != 0 || len(sender.sent) != 0 {
		t.Error("no token or email should be produced on validation failure")
	}
}

func TestCreate_InvalidEmail(t *testing.T) {
	svc, store, _, _ := newTestService()

	_, err := svc.Create(context.Background(), "Frank", "franktest.com")
	assertKind(t, err, KindValidation)
	if len(store.rows) != 0 {
		t.Error("no row should be persisted on validation failure")
	}
}

func TestCreate_InsertFailureShortCircuits(t *testing.T) {
	svc, store, tokens, sender := newTestService()
	store.insertErr = errors.New("connection refused")

	_, err := svc.Create(context.Background(), "Frank", "frank@test.com")
	assertKind(t, err, KindPersistence)

	if len(tokens.mappings) != 0 {
		t.Error("no token should be generated after an insert failure")
	}
	if len(sender.sent) != 0 {
		t.Error("no email should be sent after an insert failure")
	}
}

func TestCreate_TokenStoreFailureLeavesPendingRow(t *testing.T) {
	svc, store, tokens, sender := newTestService()
	tokens.storeErr = errors.New("redis down")

	_, err := svc.Create(context.Background(), "Frank", "frank@test.com")
	assertKind(t, err, KindTokenStore)

	// The orphaned pending row is an accepted failure mode.
	if len(store.rows) != 1 {
		t.Errorf("len(rows) = %d, want 1", len(store.rows))
	}
	for _, sub := range store.rows {
		if sub.Status != domain.StatusPending {
			t.Errorf("orphaned row status = %q, want pending", sub.Status)
		}
	}
	if len(sender.sent) != 0 {
		t.Error("no email should be sent after a token store failure")
	}
}

func TestCreate_SendFailureKeepsRowAndToken(t *testing.T) {
	svc, store, tokens, sender := newTestService()
	sender.sendErr = errors.New("provider 503")

	_, err := svc.Create(context.Background(), "Frank", "frank@test.com")
	assertKind(t, err, KindEmailDelivery)

	if len(store.rows) != 1 {
		t.Errorf("len(rows) = %d, want 1", len(store.rows))
	}
	if len(tokens.mappings) != 1 {
		t.Errorf("len(token mappings) = %d, want 1", len(tokens.mappings))
	}
}

func TestConfirm_TransitionsPendingToConfirmed(t *testing.T) {
	svc, store, _, sender := newTestService()

	sub, err := svc.Create(context.Background(), "Frank", "frank@test.com")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	token := tokenFromEmail(t, sender.sent[0].body)

	confirmed, err := svc.Confirm(context.Background(), token)
	if err != nil {
		t.Fatalf("Confirm() error: %v", err)
	}
	if confirmed.ID != sub.ID {
		t.Errorf("confirmed id = %s, want %s", confirmed.ID, sub.ID)
	}
	if confirmed.Status != domain.StatusConfirmed {
		t.Errorf("Status = %q, want %q", confirmed.Status, domain.StatusConfirmed)
	}
	if store.rows[sub.ID].Status != domain.StatusConfirmed {
		t.Error("stored row was not updated")
	}
}

func TestConfirm_Idempotent(t *testing.T) {
	svc, _, _, sender := newTestService()

	if _, err := svc.Create(context.Background(), "Frank", "frank@test.com"); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	token := tokenFromEmail(t, sender.sent[0].body)

	for i := 0; i < 2; i++ {
		sub, err := svc.Confirm(context.Background(), token)
		if err != nil {
			t.Fatalf("Confirm() call %d error: %v", i+1, err)
		}
		if sub.Status != domain.StatusConfirmed {
			t.Errorf("call %d: Status = %q, want confirmed", i+1, sub.Status)
		}
	}
}

func TestConfirm_UnknownToken(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Confirm(context.Background(), "not-a-real-token")
	assertKind(t, err, KindNotFound)
}

func TestConfirm_MappingToMissingSubscriber(t *testing.T) {
	svc, _, tokens, _ := newTestService()
	tokens.mappings["orphan-token"] = uuid.New()

	_, err := svc.Confirm(context.Background(), "orphan-token")
	assertKind(t, err, KindNotFound)
}

func TestConfirm_StoreFailure(t *testing.T) {
	svc, store, tokens, _ := newTestService()
	tokens.mappings["some-token"] = uuid.New()
	store.updateErr = errors.New("connection reset")

	_, err := svc.Confirm(context.Background(), "some-token")
	assertKind(t, err, KindPersistence)
}

func assertKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	var werr *Error
	if !errors.As(err, &werr) {
		t.Fatalf("error %v is not a *subscription.Error", err)
	}
	if werr.Kind != kind {
		t.Fatalf("error kind = %s, want %s", werr.Kind, kind)
	}
}

func tokenFromEmail(t *testing.T, body string) string {
	t.Helper()
	m := linkPattern.FindStringSubmatch(body)
	if m == nil {
		t.Fatal("no link in confirmation email")
	}
	parts := strings.SplitN(m[1], "token=", 2)
	if len(parts) != 2 {
		t.Fatalf("link %q has no token parameter", m[1])
	}
	return parts[1]
}
