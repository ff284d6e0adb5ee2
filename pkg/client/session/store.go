// Package session holds the client side of the token lifecycle: a durable
// token store and an unverified identity decoder. The server remains the only
// authority on token validity; everything here is display-level state.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"
)

// Store keeps the current raw token in memory and mirrors it into a single
// file so sessions survive process restarts.
//
// The store never validates token shape. Whatever SetToken receives is what
// Token returns and what lands on disk, byte for byte.
type Store struct {
	mu      sync.Mutex
	path    string
	token   string
	present bool
}

type storedSession struct {
	Token string `json:"token"`
}

// Open hydrates a store from path. A missing or malformed file means no
// session; it is not an error. The file is read once, here.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("session store path is required")
	}
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}

	var stored storedSession
	if err := json.Unmarshal(raw, &stored); err != nil || stored.Token == "" {
		// Unreadable state is treated as signed out, never surfaced.
		return s, nil
	}
	s.token = stored.Token
	s.present = true
	return s, nil
}

// SetToken replaces the session unconditionally, in memory and on disk.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(storedSession{Token: token})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return err
	}
	s.token = token
	s.present = true
	return nil
}

// ClearToken removes the session from memory and disk. Safe to call when no
// session exists.
func (s *Store) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	s.token = ""
	s.present = false
	return nil
}

// Token returns the current raw token. The second return is false when no
// session is held.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.present
}
