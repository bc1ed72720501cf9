package tokens

import (
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/jrsteele09/research-platform-client/internal/errors"
)

// Manager owns the in-memory session and keeps it in step with the Store.
type Manager struct {
	store Store

	mu      sync.RWMutex
	session Session
}

// NewManager creates a manager over store. Call Load to hydrate it.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Load hydrates the session from the store. Missing keys leave the
// corresponding token unset.
func (m *Manager) Load() error {
	access, err := m.get(AccessTokenKey)
	if err != nil {
		return err
	}
	refresh, err := m.get(RefreshTokenKey)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = Session{AccessToken: access, RefreshToken: refresh}
	return nil
}

func (m *Manager) get(key string) (string, error) {
	v, err := m.store.Get(key)
	if errors.Is(err, errors.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "Manager.Load %s", key)
	}
	return v, nil
}

// Current returns a snapshot of the session.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// IsAuthenticated reports whether an access token is present. It does not
// look at expiry or signature.
func (m *Manager) IsAuthenticated() bool {
	return m.Current().HasAccessToken()
}

// Set replaces the session and persists both tokens. The in-memory session is
// updated even when persisting fails.
func (m *Manager) Set(accessToken, refreshToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setLocked(accessToken, refreshToken)
}

// ReplaceAccessToken installs a refreshed access token, but only while the
// session still holds refreshToken. It reports false when the session was
// cleared or replaced in the meantime and leaves it untouched.
func (m *Manager) ReplaceAccessToken(refreshToken, accessToken string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.RefreshToken != refreshToken {
		return false, nil
	}
	return true, m.setLocked(accessToken, refreshToken)
}

// Clear unsets the session and removes both persisted tokens.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearLocked()
}

// ClearSession clears the session only while it still holds refreshToken, so
// a failed refresh never discards a session created after it started.
func (m *Manager) ClearSession(refreshToken string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.RefreshToken != refreshToken {
		return false, nil
	}
	return true, m.clearLocked()
}

func (m *Manager) setLocked(accessToken, refreshToken string) error {
	m.session = Session{AccessToken: accessToken, RefreshToken: refreshToken}

	var result *multierror.Error
	if err := m.store.Set(AccessTokenKey, accessToken); err != nil {
		result = multierror.Append(result, errors.Wrapf(err, "Manager.Set %s", AccessTokenKey))
	}
	if err := m.store.Set(RefreshTokenKey, refreshToken); err != nil {
		result = multierror.Append(result, errors.Wrapf(err, "Manager.Set %s", RefreshTokenKey))
	}
	return result.ErrorOrNil()
}

func (m *Manager) clearLocked() error {
	m.session = Session{}

	var result *multierror.Error
	if err := m.store.Remove(AccessTokenKey); err != nil {
		result = multierror.Append(result, errors.Wrapf(err, "Manager.Clear %s", AccessTokenKey))
	}
	if err := m.store.Remove(RefreshTokenKey); err != nil {
		result = multierror.Append(result, errors.Wrapf(err, "Manager.Clear %s", RefreshTokenKey))
	}
	return result.ErrorOrNil()
}
