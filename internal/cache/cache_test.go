package cache

import (
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	if got := Key("accounts"); got != "accounts" {
		t.Fatalf("Key = %q", got)
	}
	if got := Key("transactions", "account_id=1", "type=EXPENSE"); got != "transactions|account_id=1&type=EXPENSE" {
		t.Fatalf("Key = %q", got)
	}
}

func TestInvalidatePrefix(t *testing.T) {
	q := New(time.Minute)
	q.Set(Key("accounts"), 1)
	q.Set(Key("accounts", "include_closed=true"), 2)
	q.Set(Key("categories"), 3)

	q.Invalidate("accounts")

	if _, ok := q.Get(Key("accounts")); ok {
		t.Fatal("bare key should be gone")
	}
	if _, ok := q.Get(Key("accounts", "include_closed=true")); ok {
		t.Fatal("filtered key should be gone")
	}
	if _, ok := q.Get(Key("categories")); !ok {
		t.Fatal("other collections must survive")
	}
}

func TestInvalidateDoesNotMatchSiblingCollections(t *testing.T) {
	q := New(time.Minute)
	q.Set("account", 1)
	q.Set("accounts", 2)
	q.Invalidate("accounts")
	if _, ok := q.Get("account"); !ok {
		t.Fatal("shorter collection name must not be swept by prefix match")
	}
}

func TestZeroTTLDisables(t *testing.T) {
	q := New(0)
	q.Set("accounts", 1)
	if _, ok := q.Get("accounts"); ok {
		t.Fatal("disabled cache must never hit")
	}
	q.Invalidate("accounts")
	q.Flush()
	if q.Len() != 0 {
		t.Fatalf("Len = %d", q.Len())
	}
}

func TestFlush(t *testing.T) {
	q := New(time.Minute)
	q.Set("accounts", 1)
	q.Set("categories", 2)
	q.Flush()
	if q.Len() != 0 {
		t.Fatalf("Len after flush = %d", q.Len())
	}
}
