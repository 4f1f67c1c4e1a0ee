package cache

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
)

// newTestRedisCache starts a miniredis and wraps a client around it.
func newTestRedisCache(t *testing.T, opts ...RedisOption) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	c := NewRedisCacheFromClient(client, opts...)
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	mr, c := newTestRedisCache(t)

	// Miss before anything is stored
	if _, hit, err := c.Get(ctx, "answer"); err != nil || hit {
		t.Fatalf("Get before Set = hit %v, err %v; want miss, nil", hit, err)
	}

	// Roundtrip under the default key prefix
	payload := []byte(`{"answer":1}`)
	if err := c.Set(ctx, "answer", payload, 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if !mr.Exists("treedom:answer") {
		t.Error("Set did not write under the treedom: prefix")
	}
	got, hit, err := c.Get(ctx, "answer")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("Get after Set missed")
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Get = %q, want %q", got, payload)
	}

	// Delete removes the entry
	if err := c.Delete(ctx, "answer"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "answer"); hit {
		t.Error("Get after Delete still hits")
	}
}

func TestRedisCacheTTL(t *testing.T) {
	ctx := context.Background()
	mr, c := newTestRedisCache(t)

	if err := c.Set(ctx, "short", []byte("x"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "short"); !hit {
		t.Fatal("Get before expiry missed")
	}

	mr.FastForward(2 * time.Minute)

	if _, hit, err := c.Get(ctx, "short"); err != nil || hit {
		t.Errorf("Get after expiry = hit %v, err %v; want miss, nil", hit, err)
	}
}

func TestRedisCachePrefix(t *testing.T) {
	ctx := context.Background()
	mr, c := newTestRedisCache(t, WithPrefix("bench:"))

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if !mr.Exists("bench:k") {
		t.Error("WithPrefix was not applied to the stored key")
	}
	if mr.Exists("treedom:k") {
		t.Error("default prefix leaked through WithPrefix")
	}
}
