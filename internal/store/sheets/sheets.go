// Package sheets implements store.RowStore against the Google Sheets API
// (v4), the system of record for the punch ledger. Each logical table is
// one tab of the spreadsheet; row 1 of a tab is its header and is
// validated against the expected schema on every full read.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/vilhena/ponto/internal/store"
)

const apiBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

var _ store.RowStore = (*Store)(nil)

// Store is an authenticated Sheets API client bound to one spreadsheet.
type Store struct {
	httpClient    *http.Client
	spreadsheetID string
	schemas       map[string][]string
}

// New creates a Store for the given spreadsheet using the service-account
// key file at credsFile. schemas maps tab names to their expected header.
func New(ctx context.Context, credsFile, spreadsheetID string, schemas map[string][]string) (*Store, error) {
	client, err := newHTTPClient(ctx, credsFile)
	if err != nil {
		return nil, err
	}
	return &Store{
		httpClient:    client,
		spreadsheetID: spreadsheetID,
		schemas:       schemas,
	}, nil
}

// valueRange mirrors the Sheets API values resource. Cells come back as
// untyped JSON values; everything the punch clock stores is a string, but
// manually edited cells may decode as numbers.
type valueRange struct {
	Range  string  `json:"range,omitempty"`
	Values [][]any `json:"values,omitempty"`
}

func cellString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// a1Ref builds an A1 reference for a data cell. Data row 1 lives at sheet
// row 2, below the header.
func a1Ref(table string, rowIndex, col int) string {
	return fmt.Sprintf("'%s'!%s%d", table, columnLetter(col), rowIndex+1)
}

// columnLetter converts a 1-based column index to its letter form.
func columnLetter(col int) string {
	s := ""
	for col > 0 {
		col--
		s = string(rune('A'+col%26)) + s
		col /= 26
	}
	return s
}

func (s *Store) valuesURL(ref string, query url.Values) string {
	u := fmt.Sprintf("%s/%s/values/%s", apiBaseURL, s.spreadsheetID, url.PathEscape(ref))
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (s *Store) do(ctx context.Context, method, endpoint string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %v: %w", err, store.ErrUnavailable)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %v: %w", err, store.ErrUnavailable)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheets API request failed: %v: %w", err, store.ErrUnavailable)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response body: %v: %w", err, store.ErrUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sheets API error %d: %s: %w", resp.StatusCode, data, store.ErrUnavailable)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding sheets response: %v: %w", err, store.ErrUnavailable)
		}
	}
	return nil
}

// checkHeader validates a tab's first row against the expected schema.
func (s *Store) checkHeader(table string, header []any) error {
	want, ok := s.schemas[table]
	if !ok {
		return fmt.Errorf("unknown table %q: %w", table, store.ErrRowShape)
	}
	if len(header) < len(want) {
		return fmt.Errorf("tab %q has %d header columns, want %d: %w", table, len(header), len(want), store.ErrRowShape)
	}
	for i, name := range want {
		if got := cellString(header[i]); got != name {
			return fmt.Errorf("tab %q column %d is %q, want %q: %w", table, i+1, got, name, store.ErrRowShape)
		}
	}
	return nil
}

func (s *Store) ReadAllRows(ctx context.Context, table string) ([]store.Row, error) {
	endpoint := s.valuesURL(fmt.Sprintf("'%s'", table), url.Values{"majorDimension": {"ROWS"}})

	var vr valueRange
	if err := s.do(ctx, http.MethodGet, endpoint, nil, &vr); err != nil {
		return nil, err
	}
	if len(vr.Values) == 0 {
		return nil, fmt.Errorf("tab %q has no header row: %w", table, store.ErrRowShape)
	}
	if err := s.checkHeader(table, vr.Values[0]); err != nil {
		return nil, err
	}

	rows := make([]store.Row, 0, len(vr.Values)-1)
	for i, raw := range vr.Values[1:] {
		cells := make([]string, len(raw))
		for j, v := range raw {
			cells[j] = cellString(v)
		}
		rows = append(rows, store.Row{Index: i + 1, Cells: cells})
	}
	return rows, nil
}

func (s *Store) AppendRow(ctx context.Context, table string, values []string) error {
	query := url.Values{
		"valueInputOption": {"RAW"},
		"insertDataOption": {"INSERT_ROWS"},
	}
	endpoint := fmt.Sprintf("%s/%s/values/%s:append?%s",
		apiBaseURL, s.spreadsheetID, url.PathEscape(fmt.Sprintf("'%s'", table)), query.Encode())

	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	return s.do(ctx, http.MethodPost, endpoint, valueRange{Values: [][]any{row}}, nil)
}

func (s *Store) UpdateCell(ctx context.Context, table string, rowIndex, col int, value string) error {
	endpoint := s.valuesURL(a1Ref(table, rowIndex, col), url.Values{"valueInputOption": {"RAW"}})
	return s.do(ctx, http.MethodPut, endpoint, valueRange{Values: [][]any{{value}}}, nil)
}

func (s *Store) GetCell(ctx context.Context, table string, rowIndex, col int) (string, error) {
	endpoint := s.valuesURL(a1Ref(table, rowIndex, col), nil)

	var vr valueRange
	if err := s.do(ctx, http.MethodGet, endpoint, nil, &vr); err != nil {
		return "", err
	}
	if len(vr.Values) == 0 || len(vr.Values[0]) == 0 {
		return "", nil
	}
	return cellString(vr.Values[0][0]), nil
}
