package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/scansafe/backend/internal/domain"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "key", "value", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "value" {
		t.Errorf("Get = %v, want %q", got, "value")
	}
}

func TestMemoryCache_MissReturnsCacheMiss(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()

	_, err := c.Get(context.Background(), "absent")
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_JSONRoundTrip(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	product := domain.Product{
		"product_name": "Oat Milk",
		"status":       1,
	}
	if err := c.Set(ctx, "product:1", product, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := c.Get(ctx, "product:1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	m, ok := got.(map[string]interface{})
	if !ok {
		t.Fatalf("cached value is %T, want map[string]interface{}", got)
	}
	if m["product_name"] != "Oat Milk" {
		t.Errorf("product_name = %v", m["product_name"])
	}
	// JSON round-trip turns numbers into float64
	if m["status"] != float64(1) {
		t.Errorf("status = %v (%T), want float64(1)", m["status"], m["status"])
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "key", "value", 10*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, err := c.Get(ctx, "key"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("error = %v, want ErrCacheMiss after expiry", err)
	}
	exists, err := c.Exists(ctx, "key")
	if err != nil || exists {
		t.Errorf("Exists = %v, %v, want false, nil", exists, err)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "key", "value", time.Minute)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := c.Get(ctx, "key"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("error = %v, want ErrCacheMiss after delete", err)
	}
}

func TestMemoryCache_Exists(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "key", "value", time.Minute)

	exists, err := c.Exists(ctx, "key")
	if err != nil || !exists {
		t.Errorf("Exists = %v, %v, want true, nil", exists, err)
	}
	exists, err = c.Exists(ctx, "other")
	if err != nil || exists {
		t.Errorf("Exists = %v, %v, want false, nil", exists, err)
	}
}

func TestMemoryCache_RemoveExpired(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "fresh", "a", time.Minute)
	c.Set(ctx, "stale", "b", time.Nanosecond)
	time.Sleep(time.Millisecond)

	c.removeExpired()
	if c.Size() != 1 {
		t.Errorf("Size = %d, want 1", c.Size())
	}
}

func TestMemoryCache_CloseIsIdempotent(t *testing.T) {
	c := NewMemoryCache()
	c.Close()
	c.Close()
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				c.Set(ctx, "shared", j, time.Minute)
				c.Get(ctx, "shared")
				c.Exists(ctx, "shared")
			}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}
