package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/vilhena/ponto/internal/clock"
	"github.com/vilhena/ponto/internal/config"
	"github.com/vilhena/ponto/internal/session"
	"github.com/vilhena/ponto/internal/store"
	"github.com/vilhena/ponto/internal/store/sheets"
	"github.com/vilhena/ponto/internal/store/sqlite"
)

// app bundles everything a command needs: config, the ledger's civil
// clock, the backing store and the session manager.
type app struct {
	cfg      config.Config
	clock    *clock.Source
	store    store.RowStore
	sessions *session.Manager

	closeStore func() error
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	base, err := config.BaseDir()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		clock:    clock.New(*cfg.Store.UTCOffsetHours),
		sessions: session.NewManager(base),
	}

	schemas := map[string][]string{
		cfg.Store.LedgerTab: store.LedgerColumns,
		cfg.Store.UsersTab:  store.UserColumns,
	}

	switch cfg.Store.Backend {
	case "sheets":
		if cfg.Store.SpreadsheetID == "" || cfg.Store.CredentialsFile == "" {
			return nil, fmt.Errorf("spreadsheet_id and credentials_file must be set in %s", filepath.Join(base, "config.json"))
		}
		st, err := sheets.New(ctx, cfg.Store.CredentialsFile, cfg.Store.SpreadsheetID, schemas)
		if err != nil {
			return nil, err
		}
		a.store = st
	case "sqlite":
		path := cfg.Store.SQLitePath
		if path == "" {
			path = filepath.Join(base, "ponto.db")
		}
		st, err := sqlite.New(path, schemas)
		if err != nil {
			return nil, err
		}
		a.store = st
		a.closeStore = st.Close
	default:
		return nil, fmt.Errorf("unknown store backend %q (want \"sheets\" or \"sqlite\")", cfg.Store.Backend)
	}

	return a, nil
}

func (a *app) Close() {
	if a.closeStore != nil {
		_ = a.closeStore()
	}
}

// fail prints the error and exits: 2 for store failures, 1 otherwise.
func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	if errors.Is(err, store.ErrUnavailable) || errors.Is(err, store.ErrRowShape) {
		os.Exit(2)
	}
	os.Exit(1)
}

// requireSession loads the current session or exits asking the user to log in.
func requireSession(m *session.Manager) *session.Session {
	s, err := m.Current()
	if errors.Is(err, session.ErrNoSession) {
		fmt.Fprintln(os.Stderr, `Not logged in. Run "ponto login <username>" first.`)
		os.Exit(1)
	}
	if err != nil {
		fail(err)
	}
	return s
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}
