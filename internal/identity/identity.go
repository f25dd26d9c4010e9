// Package identity registers users and checks credentials against the
// user table. Passwords are stored as bcrypt hashes in the Senha column.
package identity

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/vilhena/ponto/internal/model"
	"github.com/vilhena/ponto/internal/store"
)

// 1-based column positions in the user table.
const (
	colUsername = 1
	colSenha    = 2
	colNome     = 3
)

var (
	// ErrInvalidCredentials is the single error returned for any failed
	// login. It never distinguishes an unknown user from a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAlreadyExists      = errors.New("username already registered")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// dummyHash is a valid bcrypt hash compared against when the username is
// unknown, so a login attempt costs the same either way and timing does
// not reveal which factor failed.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service implements registration and authentication over a row store.
type Service struct {
	store store.RowStore
	table string
}

// NewService creates a Service over the given user table.
func NewService(st store.RowStore, table string) *Service {
	return &Service{store: st, table: table}
}

func cell(r store.Row, col int) string {
	if col <= len(r.Cells) {
		return r.Cells[col-1]
	}
	return ""
}

func (s *Service) find(ctx context.Context, username string) (store.Row, bool, error) {
	rows, err := s.store.ReadAllRows(ctx, s.table)
	if err != nil {
		return store.Row{}, false, fmt.Errorf("reading users: %w", err)
	}
	for _, r := range rows {
		if cell(r, colUsername) == username {
			return r, true, nil
		}
	}
	return store.Row{}, false, nil
}

// Register creates a new account. Uniqueness is enforced by scanning the
// table before inserting; two concurrent registrations of the same name
// can both pass the scan, the same window the ledger itself lives with.
func (s *Service) Register(ctx context.Context, username, password, displayName string) (model.Identity, error) {
	if username == "" {
		return model.Identity{}, errors.New("username must not be empty")
	}
	if len(password) < 8 {
		return model.Identity{}, ErrWeakPassword
	}

	if _, found, err := s.find(ctx, username); err != nil {
		return model.Identity{}, err
	} else if found {
		return model.Identity{}, ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.Identity{}, fmt.Errorf("hashing password: %w", err)
	}

	if err := s.store.AppendRow(ctx, s.table, []string{username, string(hash), displayName}); err != nil {
		return model.Identity{}, fmt.Errorf("creating user: %w", err)
	}
	return model.Identity{Username: username, DisplayName: displayName}, nil
}

// Authenticate verifies a username and password. The lookup is
// case-sensitive and the password check is an exact bcrypt comparison.
func (s *Service) Authenticate(ctx context.Context, username, password string) (model.Identity, error) {
	row, found, err := s.find(ctx, username)
	if err != nil {
		return model.Identity{}, err
	}
	if !found {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return model.Identity{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cell(row, colSenha)), []byte(password)); err != nil {
		return model.Identity{}, ErrInvalidCredentials
	}
	return model.Identity{Username: username, DisplayName: cell(row, colNome)}, nil
}
