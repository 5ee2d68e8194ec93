// Package session holds the dashboard client's current identity: at most
// one logged-in user plus the bearer token proving it. The browser build of
// the dashboard kept this in a localStorage-persisted global; here it is an
// explicit object handed to whatever front-end drives the API, persisted to
// a JSON file with the same load-on-start / clear-on-logout lifecycle.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"sync"

	"github.com/spec-kit/ticket-admin/internal/domain"
)

// State is the persisted session snapshot. IsAuthenticated is derived from
// the presence of a user and stored only for the convenience of readers of
// the raw file.
type State struct {
	User            *domain.PublicUser `json:"user"`
	Token           string             `json:"token"`
	IsAuthenticated bool               `json:"isAuthenticated"`
}

// Store owns the session state and its backing file.
type Store struct {
	mu    sync.Mutex
	path  string
	state State
}

// Open loads the session file at path, starting empty when none exists.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.state); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the logged-in user, if any.
func (s *Store) Current() (domain.PublicUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil {
		return domain.PublicUser{}, false
	}
	return *s.state.User, true
}

// Token returns the held bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// IsAuthenticated reports whether a user is currently held.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.User != nil
}

// Login stores the user and token and persists the state.
func (s *Store) Login(user domain.PublicUser, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{User: &user, Token: token, IsAuthenticated: true}
	return s.save()
}

// SetUser overwrites the current user, keeping the token. A nil user marks
// the session unauthenticated.
func (s *Store) SetUser(user *domain.PublicUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = user
	s.state.IsAuthenticated = user != nil
	return s.save()
}

// UpdateUser applies an in-place edit to the current user, if any.
func (s *Store) UpdateUser(apply func(*domain.PublicUser)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil {
		return nil
	}
	apply(s.state.User)
	return s.save()
}

// Logout clears user and token. No server call happens anywhere in the
// logout path: the token stays valid until its embedded expiry.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	return s.save()
}

func (s *Store) save() error {
	raw, err := json.MarshalIndent(&s.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}
