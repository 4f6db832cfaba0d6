package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnauthorized means the backend rejected the session's credentials.
var ErrUnauthorized = errors.New("unauthorized")

// Session is the signed-in viewer. A nil *Session means nobody is signed in.
type Session struct {
	UserID  string
	Email   string
	Token   string
	SavedAt time.Time
}

// Valid reports whether s identifies a user.
func (s *Session) Valid() bool {
	return s != nil && s.UserID != "" && s.Token != ""
}

// ID returns the user id, or "" for a nil session.
func (s *Session) ID() string {
	if s == nil {
		return ""
	}
	return s.UserID
}

// SessionStore persists the current session between runs.
type SessionStore interface {
	// Load returns the saved session, or nil if there is none.
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// SessionManager owns the session lifecycle: Load once at start-up, Save
// after a login, Clear on logout. Callers pass the *Session it returns
// explicitly to whatever needs it.
type SessionManager struct {
	store SessionStore
	now   func() time.Time
}

// NewSessionManager creates a SessionManager backed by store.
func NewSessionManager(store SessionStore) *SessionManager {
	return &SessionManager{store: store, now: time.Now}
}

// Load returns the persisted session, or nil when none is saved or the saved
// one is incomplete.
func (m *SessionManager) Load(ctx context.Context) (*Session, error) {
	s, err := m.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !s.Valid() {
		return nil, nil
	}
	return s, nil
}

// Save persists s and returns the stored copy.
func (m *SessionManager) Save(ctx context.Context, s Session) (*Session, error) {
	if !s.Valid() {
		return nil, errors.New("save session: missing user id or token")
	}
	s.SavedAt = m.now().UTC()
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &s, nil
}

// Clear removes the persisted session.
func (m *SessionManager) Clear(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
