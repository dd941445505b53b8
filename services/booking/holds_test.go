package booking

import (
	"context"
	"testing"
	"time"

	"github.com/oscarfollett-cpu/vf-dentist-mcp/models"
)

func TestHoldKeyNormalizesToUTC(t *testing.T) {
	auckland := mustTime(t, "2024-06-10T09:00:00+12:00")
	utc := mustTime(t, "2024-06-09T21:00:00Z")
	end := mustTime(t, "2024-06-10T10:00:00+12:00")

	if HoldKey(auckland, end) != HoldKey(utc, end) {
		t.Errorf("expected equal instants to share a key: %q vs %q",
			HoldKey(auckland, end), HoldKey(utc, end))
	}
}

func TestMemoryHoldStoreAcquire(t *testing.T) {
	store := newMemoryStoreForTest()
	ctx := context.Background()

	ok, err := store.Acquire(ctx, "hold:a", "tok-1", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first acquire: ok=%v err=%v", ok, err)
	}

	// Same token refreshes; a different token is refused.
	if ok, _ := store.Acquire(ctx, "hold:a", "tok-1", time.Minute); !ok {
		t.Error("expected re-acquire with same token to succeed")
	}
	if ok, _ := store.Acquire(ctx, "hold:a", "tok-2", time.Minute); ok {
		t.Error("expected acquire with different token to fail")
	}

	holder, err := store.Holder(ctx, "hold:a")
	if err != nil || holder != "tok-1" {
		t.Errorf("expected holder tok-1, got %q (err %v)", holder, err)
	}
}

func TestMemoryHoldStoreExpiry(t *testing.T) {
	now := mustTime(t, "2024-06-10T09:00:00Z")
	store := &MemoryHoldStore{
		holds: make(map[string]models.SlotHold),
		now:   func() time.Time { return now },
	}
	ctx := context.Background()

	if ok, _ := store.Acquire(ctx, "hold:a", "tok-1", time.Minute); !ok {
		t.Fatal("expected acquire to succeed")
	}

	now = now.Add(2 * time.Minute)

	if holder, _ := store.Holder(ctx, "hold:a"); holder != "" {
		t.Errorf("expected expired hold to be invisible, got %q", holder)
	}
	if ok, _ := store.Acquire(ctx, "hold:a", "tok-2", time.Minute); !ok {
		t.Error("expected acquire after expiry to succeed")
	}
}

func TestMemoryHoldStoreRelease(t *testing.T) {
	store := newMemoryStoreForTest()
	ctx := context.Background()

	if ok, _ := store.Acquire(ctx, "hold:a", "tok-1", time.Minute); !ok {
		t.Fatal("expected acquire to succeed")
	}
	if err := store.Release(ctx, "hold:a"); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}
	if ok, _ := store.Acquire(ctx, "hold:a", "tok-2", time.Minute); !ok {
		t.Error("expected acquire after release to succeed")
	}
}
