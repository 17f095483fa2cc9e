// Package session persists the bearer token issued by the ledger between
// CLI invocations, the way a browser client keeps it in local storage.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNotLoggedIn = errors.New("not logged in")

type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save writes the token with owner-only permissions.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// Load returns the stored token, or ErrNotLoggedIn when none exists.
func (s *Store) Load() (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotLoggedIn
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}

// Clear removes the stored token. Clearing an absent token is not an
// error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// ExpiresAt reads the exp claim without verifying the signature. The
// server is the only party that verifies tokens; the client just wants
// to warn before sending one that is already dead. Tokens without an
// exp claim report ok=false.
func ExpiresAt(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the token carries an exp claim in the past.
func Expired(token string, now time.Time) bool {
	exp, ok := ExpiresAt(token)
	return ok && exp.Before(now)
}
