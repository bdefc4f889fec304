package tokenstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/newsletter-service/internal/service/subscription"
)

func setupStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, ttl), mr
}

func TestStoreAndLookup(t *testing.T) {
	store, mr := setupStore(t, 24*time.Hour)
	id := uuid.New()

	if err := store.Store(context.Background(), "sometoken123", id); err != nil {
		t.Fatalf("Store() error: %v", err)
	}

	// Key format is part of the contract.
	if !mr.Exists("subscription_token:sometoken123:subscriber_id") {
		t.Error("expected key subscription_token:sometoken123:subscriber_id")
	}

	got, err := store.Lookup(context.Background(), "sometoken123")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if got != id {
		t.Errorf("Lookup() = %s, want %s", got, id)
	}
}

func TestStore_SetsTTL(t *testing.T) {
	store, mr := setupStore(t, time.Hour)

	if err := store.Store(context.Background(), "sometoken123", uuid.New()); err != nil {
		t.Fatalf("Store() error: %v", err)
	}
	ttl := mr.TTL("subscription_token:sometoken123:subscriber_id")
	if ttl != time.Hour {
		t.Errorf("TTL = %s, want 1h", ttl)
	}
}

func TestLookup_ExpiredToken(t *testing.T) {
	store, mr := setupStore(t, time.Hour)

	if err := store.Store(context.Background(), "sometoken123", uuid.New()); err != nil {
		t.Fatalf("Store() error: %v", err)
	}
	mr.FastForward(2 * time.Hour)

	_, err := store.Lookup(context.Background(), "sometoken123")
	if !errors.Is(err, subscription.ErrTokenNotFound) {
		t.Errorf("err = %v, want ErrTokenNotFound", err)
	}
}

func TestLookup_UnknownToken(t *testing.T) {
	store, _ := setupStore(t, 0)

	_, err := store.Lookup(context.Background(), "not-a-real-token")
	if !errors.Is(err, subscription.ErrTokenNotFound) {
		t.Errorf("err = %v, want ErrTokenNotFound", err)
	}
}

func TestLookup_CorruptMapping(t *testing.T) {
	store, mr := setupStore(t, 0)
	mr.Set("subscription_token:sometoken123:subscriber_id", "not-a-uuid")

	_, err := store.Lookup(context.Background(), "sometoken123")
	if !errors.Is(err, subscription.ErrTokenNotFound) {
		t.Errorf("err = %v, want ErrTokenNotFound (corrupt mapping conflated)", err)
	}
}
