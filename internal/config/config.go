package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vilhena/ponto/internal/clock"
)

// Config is the root configuration for ponto, stored in ~/.ponto/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	Store StoreConfig `json:"store"`
}

// StoreConfig selects and parameterises the ledger backend.
type StoreConfig struct {
	// Backend is "sheets" (Google Sheets, the system of record) or
	// "sqlite" (a local file, for offline use).
	Backend string `json:"backend"`
	// SpreadsheetID is the Google Sheets document ID.
	SpreadsheetID string `json:"spreadsheet_id"`
	// CredentialsFile is the path to a service-account JSON key that has
	// been shared on the spreadsheet.
	CredentialsFile string `json:"credentials_file"`
	// LedgerTab and UsersTab name the two tabs (or local tables).
	LedgerTab string `json:"ledger_tab"`
	UsersTab  string `json:"users_tab"`
	// SQLitePath is the database file for the sqlite backend.
	// Empty = ~/.ponto/ponto.db.
	SQLitePath string `json:"sqlite_path"`
	// UTCOffsetHours is the fixed civil timezone of the ledger.
	// Null = -3. Not DST-aware.
	UTCOffsetHours *int `json:"utc_offset_hours"`
}

const (
	// DefaultBackend is the remote spreadsheet, matching the original
	// deployment of the punch clock.
	DefaultBackend = "sheets"
	// DefaultLedgerTab holds the punch rows.
	DefaultLedgerTab = "Ponto"
	// DefaultUsersTab holds the credential rows.
	DefaultUsersTab = "Usuarios"
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	offset := clock.DefaultOffsetHours
	return Config{
		Store: StoreConfig{
			Backend:        DefaultBackend,
			LedgerTab:      DefaultLedgerTab,
			UsersTab:       DefaultUsersTab,
			UTCOffsetHours: &offset,
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// ponto configuration – ~/.ponto/config.json
//
// The ledger lives in a Google Sheet with two tabs:
//   Ponto:    Usuario | Data | Entrada | Almoco_Inicio | Almoco_Fim | Saida
//   Usuarios: Username | Senha | Nome
// Both tabs need their header in row 1. Corrections to recorded punches are
// made directly in the sheet; ponto never overwrites a recorded time.
{
  "store": {
    // "sheets" – remote Google Sheet (default), or "sqlite" – local file.
    "backend": "sheets",

    // Google Sheets document ID (the long token in the sheet's URL).
    "spreadsheet_id": "",

    // Service-account JSON key. Share the spreadsheet with the
    // service account's email, as an editor.
    "credentials_file": "",

    // Tab names.
    "ledger_tab": "Ponto",
    "users_tab": "Usuarios",

    // Database file for the sqlite backend. Empty = ~/.ponto/ponto.db.
    "sqlite_path": "",

    // Fixed UTC offset of the ledger's civil timezone. Not DST-aware.
    "utc_offset_hours": -3
  }
}
`

// BaseDir returns the root data directory (~/.ponto).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ponto"), nil
}

func configFilePath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.ponto/config.json, creating it with annotated defaults on
// first run.
func Load() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return defaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = DefaultBackend
	}
	if cfg.Store.LedgerTab == "" {
		cfg.Store.LedgerTab = DefaultLedgerTab
	}
	if cfg.Store.UsersTab == "" {
		cfg.Store.UsersTab = DefaultUsersTab
	}
	if cfg.Store.UTCOffsetHours == nil {
		offset := clock.DefaultOffsetHours
		cfg.Store.UTCOffsetHours = &offset
	}

	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
