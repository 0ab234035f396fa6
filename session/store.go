// Package session holds the bearer token for the current user.
//
// The store is the single owner of session state: every view reads the
// authenticated flag from it, every token change is mirrored to the durable
// state file, and observers are notified so the TUI can re-route. The token
// itself is opaque; the store never inspects or validates it.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/eklerner/tdo/api"
	"github.com/eklerner/tdo/internal/state"
)

// Store holds the current bearer token and keeps it in sync with the state
// file. It satisfies api.TokenSource.
type Store struct {
	mu        sync.Mutex
	token     string
	state     *state.Store
	client    *api.Client
	observers []func()
}

// Open creates a store backed by the given state file and restores any
// previously persisted session.
func Open(st *state.Store) (*Store, error) {
	loaded, err := st.Load()
	if err != nil {
		return nil, err
	}
	return &Store{token: loaded.Token, state: st}, nil
}

// SetClient wires the service client used by Login and Register. The client
// should use this store as its token source.
func (s *Store) SetClient(client *api.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = client
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated reports whether a token is currently held.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// Subscribe registers fn to run after every token change.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Login exchanges credentials for a token and stores it. On failure the
// session is left untouched and the error carries the service's message.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	client := s.client
	s.mu.Unlock()
	if client == nil {
		return errors.New("session: no client configured")
	}

	token, err := client.Token(ctx, email, password)
	if err != nil {
		return err
	}

	return s.setToken(token)
}

// Register forwards registration fields to the service. It does not
// establish a session; callers navigate to login on success.
func (s *Store) Register(ctx context.Context, email, password, slackChannel string) error {
	s.mu.Lock()
	client := s.client
	s.mu.Unlock()
	if client == nil {
		return errors.New("session: no client configured")
	}

	_, err := client.Register(ctx, api.RegisterRequest{
		Email:        email,
		Password:     password,
		SlackChannel: slackChannel,
	})
	return err
}

// Logout clears the stored token unconditionally. It has no server
// round-trip and always succeeds in memory; persistence errors are returned
// but the in-memory session is cleared regardless.
func (s *Store) Logout() error {
	return s.setToken("")
}

// Clear drops the session. It is the unauthorized hook target: any 401
// response tears the session down through here.
func (s *Store) Clear() {
	s.setToken("")
}

func (s *Store) setToken(token string) error {
	s.mu.Lock()
	changed := s.token != token
	s.token = token
	st := s.state
	observers := append([]func(){}, s.observers...)
	s.mu.Unlock()

	var err error
	if st != nil {
		err = st.Update(func(persisted *state.State) error {
			persisted.Token = token
			return nil
		})
	}

	if changed {
		for _, fn := range observers {
			fn()
		}
	}
	return err
}
