package session

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	s := NewStore(path)

	if _, err := s.Load(); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
	if err := s.Save("abc.def.ghi"); err != nil {
		t.Fatalf("save: %v", err)
	}
	token, err := s.Load()
	if err != nil || token != "abc.def.ghi" {
		t.Fatalf("load = (%q, %v)", token, err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := s.Load(); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn after clear, got %v", err)
	}
	// clearing twice is fine
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user@example.com",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestExpiresAt(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got, ok := ExpiresAt(signedToken(t, exp))
	if !ok || !got.Equal(exp) {
		t.Fatalf("ExpiresAt = (%v, %v), want %v", got, ok, exp)
	}

	if _, ok := ExpiresAt("not-a-jwt"); ok {
		t.Fatal("garbage token must not report an expiry")
	}
}

func TestExpired(t *testing.T) {
	now := time.Now()
	if Expired(signedToken(t, now.Add(time.Hour)), now) {
		t.Fatal("future token reported expired")
	}
	if !Expired(signedToken(t, now.Add(-time.Hour)), now) {
		t.Fatal("past token not reported expired")
	}
	// no exp claim: never report expired, the server decides
	if Expired("not-a-jwt", now) {
		t.Fatal("garbage token must not report expired")
	}
}
