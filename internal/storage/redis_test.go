package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/brewcart/pkg/redis"
)

type stubRedis struct {
	values map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newStubRedis() *stubRedis {
	return &stubRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (s *stubRedis) Get(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	v, ok := s.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (s *stubRedis) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	s.values[key] = value.(string)
	s.ttls[key] = ttl
	return nil
}

func (s *stubRedis) StateKey(sessionID, namespace string) string {
	return "bc:state:" + sessionID + ":" + namespace
}

func (s *stubRedis) Ping(context.Context) error { return nil }

func TestRedisStoreReadWrite(t *testing.T) {
	kv := newStubRedis()
	store, err := NewRedisStore(kv, time.Hour)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if _, ok, err := store.Read(ctx, "s1", NamespaceCart); ok || err != nil {
		t.Fatalf("expected absent key, ok=%v err=%v", ok, err)
	}

	if err := store.Write(ctx, "s1", NamespaceCart, []byte(`{"items":[]}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	key := "bc:state:s1:" + NamespaceCart
	if kv.ttls[key] != time.Hour {
		t.Fatalf("expected ttl on write, got %v", kv.ttls[key])
	}

	got, ok, err := store.Read(ctx, "s1", NamespaceCart)
	if err != nil || !ok || string(got) != `{"items":[]}` {
		t.Fatalf("unexpected read %q ok=%v err=%v", got, ok, err)
	}
}

func TestRedisStoreSurfacesErrors(t *testing.T) {
	kv := newStubRedis()
	kv.getErr = errors.New("i/o timeout")
	store, _ := NewRedisStore(kv, 0)

	if _, _, err := store.Read(context.Background(), "s1", NamespaceOrders); err == nil {
		t.Fatal("expected read error")
	}
	if _, err := NewRedisStore(nil, 0); err == nil {
		t.Fatal("expected nil client to fail")
	}
}
