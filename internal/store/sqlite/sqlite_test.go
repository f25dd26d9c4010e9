package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilhena/ponto/internal/store"
	"github.com/vilhena/ponto/internal/store/sqlite"
)

func schemas() map[string][]string {
	return map[string][]string{
		"Ponto":    store.LedgerColumns,
		"Usuarios": store.UserColumns,
	}
}

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "ponto.db"), schemas())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndReadAllRows(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.AppendRow(ctx, "Ponto", []string{"rafa", "2024-03-06", "08:00:00", "", "", ""}))
	require.NoError(t, s.AppendRow(ctx, "Ponto", []string{"bia", "2024-03-06", "09:00:00", "", "", ""}))

	rows, err := s.ReadAllRows(ctx, "Ponto")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, []string{"rafa", "2024-03-06", "08:00:00", "", "", ""}, rows[0].Cells)
	assert.Equal(t, 2, rows[1].Index)
	assert.Equal(t, "bia", rows[1].Cells[0])
}

func TestUpdateAndGetCell(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.AppendRow(ctx, "Ponto", []string{"rafa", "2024-03-06", "08:00:00", "", "", ""}))

	got, err := s.GetCell(ctx, "Ponto", 1, 4)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.UpdateCell(ctx, "Ponto", 1, 4, "12:00:00"))

	got, err = s.GetCell(ctx, "Ponto", 1, 4)
	require.NoError(t, err)
	assert.Equal(t, "12:00:00", got)
}

func TestShortAppendPadsRow(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.AppendRow(ctx, "Usuarios", []string{"rafa"}))

	rows, err := s.ReadAllRows(ctx, "Usuarios")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"rafa", "", ""}, rows[0].Cells)
}

func TestRowShapeErrors(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, err := s.ReadAllRows(ctx, "Ferias")
	assert.ErrorIs(t, err, store.ErrRowShape)

	err = s.UpdateCell(ctx, "Ponto", 1, 99, "x")
	assert.ErrorIs(t, err, store.ErrRowShape)

	err = s.AppendRow(ctx, "Usuarios", []string{"a", "b", "c", "d"})
	assert.ErrorIs(t, err, store.ErrRowShape)

	// Unknown row index.
	err = s.UpdateCell(ctx, "Ponto", 7, 1, "x")
	assert.ErrorIs(t, err, store.ErrRowShape)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ponto.db")
	ctx := context.Background()

	s, err := sqlite.New(path, schemas())
	require.NoError(t, err)
	require.NoError(t, s.AppendRow(ctx, "Ponto", []string{"rafa", "2024-03-06", "08:00:00", "", "", ""}))
	require.NoError(t, s.Close())

	s, err = sqlite.New(path, schemas())
	require.NoError(t, err)
	defer s.Close()

	rows, err := s.ReadAllRows(ctx, "Ponto")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "08:00:00", rows[0].Cells[2])
}
