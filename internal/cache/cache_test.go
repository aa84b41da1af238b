// file: internal/cache/cache_test.go
// version: 1.1.0
// guid: b2c3d4e5-f6a7-8b9c-0d1e-2f3a4b5c6d7e

package cache

import (
	"errors"
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New[string](time.Minute)
	c.Set("k", "v")
	v, ok := c.Get("k")
	if !ok || v != "v" {
		t.Fatalf("expected v, got %q ok=%v", v, ok)
	}
}

func TestExpiry(t *testing.T) {
	c := New[int](time.Millisecond)
	c.Set("k", 42)
	time.Sleep(5 * time.Millisecond)
	_, ok := c.Get("k")
	if ok {
		t.Fatal("expected expired entry")
	}
}

func TestGetOrFill(t *testing.T) {
	c := New[int](time.Minute)
	calls := 0
	fill := func() (int, error) {
		calls++
		return 7, nil
	}
	for i := 0; i < 3; i++ {
		v, err := c.GetOrFill("k", fill)
		if err != nil || v != 7 {
			t.Fatalf("expected 7, got %d err=%v", v, err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one fill call, got %d", calls)
	}
}

func TestGetOrFillErrorNotCached(t *testing.T) {
	c := New[int](time.Minute)
	boom := errors.New("boom")
	_, err := c.GetOrFill("k", func() (int, error) { return 0, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected fill error, got %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Fatal("failed fill must not cache")
	}
}

func TestInvalidate(t *testing.T) {
	c := New[string](time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Invalidate("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected a to be invalidated")
	}
	if v, ok := c.Get("b"); !ok || v != "2" {
		t.Fatal("expected b to remain")
	}
	c.InvalidateAll()
	if _, ok := c.Get("b"); ok {
		t.Fatal("expected all invalidated")
	}
}
