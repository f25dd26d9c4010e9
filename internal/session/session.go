// Package session holds the logged-in identity between CLI invocations.
// A session is an explicit value created at login and destroyed at logout,
// persisted as a signed JWT under the data directory.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vilhena/ponto/internal/model"
)

// ErrNoSession means no valid session exists; the user must log in.
var ErrNoSession = errors.New("not logged in")

// TTL is how long a session stays valid after login.
const TTL = 24 * time.Hour

// Session is the authenticated context for one user.
type Session struct {
	ID          string
	Username    string
	DisplayName string
	ExpiresAt   time.Time
}

type claims struct {
	DisplayName string `json:"display_name"`
	jwt.RegisteredClaims
}

// sessionFile is the on-disk shape of the persisted session.
type sessionFile struct {
	Token string `json:"token"`
}

// Manager persists sessions in a directory, signing tokens with a
// per-install random secret created on first use.
type Manager struct {
	dir string
}

// NewManager creates a Manager storing its files under dir.
func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

func (m *Manager) sessionPath() string { return filepath.Join(m.dir, "session.json") }
func (m *Manager) secretPath() string  { return filepath.Join(m.dir, "session.key") }

func (m *Manager) secret() ([]byte, error) {
	data, err := os.ReadFile(m.secretPath())
	if err == nil {
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading session key: %w", err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generating session key: %w", err)
	}
	key := []byte(hex.EncodeToString(buf))
	if err := os.MkdirAll(m.dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}
	if err := os.WriteFile(m.secretPath(), key, 0o600); err != nil {
		return nil, fmt.Errorf("writing session key: %w", err)
	}
	return key, nil
}

// Create starts a session for the given identity and persists it.
func (m *Manager) Create(id model.Identity) (*Session, error) {
	key, err := m.secret()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s := &Session{
		ID:          uuid.New().String(),
		Username:    id.Username,
		DisplayName: id.DisplayName,
		ExpiresAt:   now.Add(TTL),
	}

	c := &claims{
		DisplayName: id.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Subject:   id.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(key)
	if err != nil {
		return nil, fmt.Errorf("signing session token: %w", err)
	}

	data, err := json.MarshalIndent(sessionFile{Token: token}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}

	// Atomic write: temp file then rename.
	path := m.sessionPath()
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("writing session file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("saving session file: %w", err)
	}
	return s, nil
}

// Current loads and validates the persisted session. A missing, malformed
// or expired session is reported as ErrNoSession.
func (m *Manager) Current() (*Session, error) {
	data, err := os.ReadFile(m.sessionPath())
	if os.IsNotExist(err) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	var sf sessionFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, ErrNoSession
	}

	key, err := m.secret()
	if err != nil {
		return nil, err
	}

	var c claims
	token, err := jwt.ParseWithClaims(sf.Token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrNoSession
	}
	// Tokens we did not mint may omit exp; treat them as no session.
	if c.ExpiresAt == nil {
		return nil, ErrNoSession
	}

	return &Session{
		ID:          c.ID,
		Username:    c.Subject,
		DisplayName: c.DisplayName,
		ExpiresAt:   c.ExpiresAt.Time,
	}, nil
}

// Destroy removes the persisted session. Destroying a missing session is
// not an error.
func (m *Manager) Destroy() error {
	err := os.Remove(m.sessionPath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
