package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2/jwt"

	"github.com/vilhena/ponto/internal/store"
)

const (
	spreadsheetsScope = "https://www.googleapis.com/auth/spreadsheets"
	defaultTokenURL   = "https://oauth2.googleapis.com/token"
)

// serviceAccountKey is the subset of a Google service-account JSON key
// needed for the two-legged OAuth2 flow.
type serviceAccountKey struct {
	Type        string `json:"type"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// newHTTPClient builds an authenticated HTTP client from the
// service-account key file at path. The service account must have been
// shared on the target spreadsheet.
func newHTTPClient(ctx context.Context, path string) (*http.Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file %s: %v: %w", path, err, store.ErrUnavailable)
	}

	var key serviceAccountKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("parsing credentials file %s: %v: %w", path, err, store.ErrUnavailable)
	}
	if key.Type != "service_account" || key.ClientEmail == "" || key.PrivateKey == "" {
		return nil, fmt.Errorf("credentials file %s is not a service-account key: %w", path, store.ErrUnavailable)
	}
	tokenURL := key.TokenURI
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}

	cfg := &jwt.Config{
		Email:      key.ClientEmail,
		PrivateKey: []byte(key.PrivateKey),
		Scopes:     []string{spreadsheetsScope},
		TokenURL:   tokenURL,
	}
	return cfg.Client(ctx), nil
}
