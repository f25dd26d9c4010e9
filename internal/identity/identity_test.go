package identity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilhena/ponto/internal/identity"
	"github.com/vilhena/ponto/internal/store/memory"
)

const table = "Usuarios"

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := identity.NewService(memory.New(table), table)
	ctx := context.Background()

	id, err := svc.Register(ctx, "rafa", "correct horse", "Rafael V.")
	require.NoError(t, err)
	assert.Equal(t, "rafa", id.Username)

	got, err := svc.Authenticate(ctx, "rafa", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "Rafael V.", got.DisplayName)
}

func TestRegisterDuplicate(t *testing.T) {
	svc := identity.NewService(memory.New(table), table)
	ctx := context.Background()

	_, err := svc.Register(ctx, "rafa", "correct horse", "Rafael")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "rafa", "other secret", "Impostor")
	assert.ErrorIs(t, err, identity.ErrAlreadyExists)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := identity.NewService(memory.New(table), table)

	_, err := svc.Register(context.Background(), "rafa", "short", "Rafael")
	assert.ErrorIs(t, err, identity.ErrWeakPassword)
}

func TestAuthenticateDoesNotLeakFactor(t *testing.T) {
	svc := identity.NewService(memory.New(table), table)
	ctx := context.Background()

	_, err := svc.Register(ctx, "rafa", "correct horse", "Rafael")
	require.NoError(t, err)

	// Unknown user and wrong password must be indistinguishable.
	_, unknownErr := svc.Authenticate(ctx, "nobody", "correct horse")
	_, wrongErr := svc.Authenticate(ctx, "rafa", "wrong password")

	assert.ErrorIs(t, unknownErr, identity.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, identity.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestPasswordStoredHashed(t *testing.T) {
	st := memory.New(table)
	svc := identity.NewService(st, table)
	ctx := context.Background()

	_, err := svc.Register(ctx, "rafa", "correct horse", "Rafael")
	require.NoError(t, err)

	rows, err := st.ReadAllRows(ctx, table)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	senha := rows[0].Cells[1]
	assert.NotEqual(t, "correct horse", senha)
	assert.Contains(t, senha, "$2a$", "expected a bcrypt hash")
}

func TestAuthenticateIsCaseSensitive(t *testing.T) {
	svc := identity.NewService(memory.New(table), table)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Rafa", "correct horse", "Rafael")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "rafa", "correct horse")
	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
}
