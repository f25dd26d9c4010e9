package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilhena/ponto/internal/model"
	"github.com/vilhena/ponto/internal/session"
)

func TestCreateAndCurrent(t *testing.T) {
	m := session.NewManager(t.TempDir())

	created, err := m.Create(model.Identity{Username: "rafa", DisplayName: "Rafael V."})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	loaded, err := m.Current()
	require.NoError(t, err)
	assert.Equal(t, created.ID, loaded.ID)
	assert.Equal(t, "rafa", loaded.Username)
	assert.Equal(t, "Rafael V.", loaded.DisplayName)
}

func TestCurrentWithoutLogin(t *testing.T) {
	m := session.NewManager(t.TempDir())

	_, err := m.Current()
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestDestroy(t *testing.T) {
	m := session.NewManager(t.TempDir())

	_, err := m.Create(model.Identity{Username: "rafa"})
	require.NoError(t, err)

	require.NoError(t, m.Destroy())
	_, err = m.Current()
	assert.ErrorIs(t, err, session.ErrNoSession)

	// Destroying again is not an error.
	assert.NoError(t, m.Destroy())
}

func TestTamperedTokenRejected(t *testing.T) {
	dir := t.TempDir()
	m := session.NewManager(dir)

	_, err := m.Create(model.Identity{Username: "rafa"})
	require.NoError(t, err)

	path := filepath.Join(dir, "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"not-a-jwt"}`), 0o600))

	_, err = m.Current()
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestTokenWithoutExpiryRejected(t *testing.T) {
	// A well-signed token missing exp is still no session.
	dir := t.TempDir()
	m := session.NewManager(dir)

	_, err := m.Create(model.Identity{Username: "rafa"})
	require.NoError(t, err)

	key, err := os.ReadFile(filepath.Join(dir, "session.key"))
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:      "no-expiry",
		Subject: "rafa",
	}).SignedString(key)
	require.NoError(t, err)

	path := filepath.Join(dir, "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"`+token+`"}`), 0o600))

	_, err = m.Current()
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestSessionsAreIndependentPerDirectory(t *testing.T) {
	// A token signed with one install's key must not validate elsewhere.
	dirA, dirB := t.TempDir(), t.TempDir()
	a := session.NewManager(dirA)
	b := session.NewManager(dirB)

	_, err := a.Create(model.Identity{Username: "rafa"})
	require.NoError(t, err)
	// Force b to create its own key.
	_, err = b.Create(model.Identity{Username: "bia"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dirA, "session.json"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dirB, "session.json"), data, 0o600))

	_, err = b.Current()
	assert.ErrorIs(t, err, session.ErrNoSession)
}
