package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

type testView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func newTestCache(t *testing.T) *ViewCache[testView] {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewViewCache[testView](client, 0)
}

func TestViewCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if _, ok := cache.Get(ctx, "user:view:alice01"); ok {
		t.Fatal("expected a miss on an empty cache")
	}

	want := &testView{ID: "alice01", Email: "alice@example.com"}
	cache.Set(ctx, "user:view:alice01", want)

	got, ok := cache.Get(ctx, "user:view:alice01")
	if !ok {
		t.Fatal("expected a hit after Set")
	}
	if got.ID != want.ID || got.Email != want.Email {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestViewCacheDelete(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "user:view:alice01", &testView{ID: "alice01"})
	cache.Delete(ctx, "user:view:alice01")

	if _, ok := cache.Get(ctx, "user:view:alice01"); ok {
		t.Error("expected a miss after Delete")
	}
}

func TestViewCacheCorruptEntryIsAMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cache := NewViewCache[testView](client, 0)

	mr.Set("user:view:bad", "{not json")

	if _, ok := cache.Get(context.Background(), "user:view:bad"); ok {
		t.Error("corrupt entries must read as a miss, not an error")
	}
}
