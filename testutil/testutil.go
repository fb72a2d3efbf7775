// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/magurofly/editorial-voting/atcoder"
	"github.com/magurofly/editorial-voting/auth"
	"github.com/magurofly/editorial-voting/cliparse"
	"github.com/magurofly/editorial-voting/db"
)

// Test token secrets; never used outside tests
const (
	TestAffiliationSecret = "test-affiliation-secret"
	TestSessionSecret     = "test-session-secret"
)

// SetupTestStore opens a fresh in-memory sqlite store with the full
// schema. The single-connection shape serializes access, so concurrent
// test traffic exercises the same code paths as production sqlite.
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()

	store, err := db.Open(db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	if err := db.CreateSchema(store); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3950,
		DatabaseURL:       ":memory:",
		DatabaseType:      "sqlite",
		AffiliationSecret: TestAffiliationSecret,
		SessionSecret:     TestSessionSecret,
		AtCoderBaseURL:    "https://atcoder.jp",
	}
}

// NewTestCodec returns a codec with the test secrets
func NewTestCodec() *auth.Codec {
	return auth.NewCodec(auth.Config{
		AffiliationSecret: TestAffiliationSecret,
		SessionSecret:     TestSessionSecret,
	})
}

// StubSource is an in-memory atcoder.ProfileSource. Call counters let
// tests assert on cache behavior.
type StubSource struct {
	mu sync.Mutex

	Affiliations map[string]string
	Ratings      map[string]int
	Editorials   map[string][]string

	AffiliationErr error
	RatingErr      error
	EditorialsErr  error

	AffiliationCalls int
	RatingCalls      int
	EditorialCalls   int
}

func (s *StubSource) FetchAffiliation(ctx context.Context, atcoderID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AffiliationCalls++
	if s.AffiliationErr != nil {
		return "", s.AffiliationErr
	}
	affiliation, ok := s.Affiliations[atcoderID]
	if !ok {
		return "", atcoder.ErrAffiliationNotFound
	}
	return affiliation, nil
}

func (s *StubSource) FetchRating(ctx context.Context, atcoderID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RatingCalls++
	if s.RatingErr != nil {
		return 0, s.RatingErr
	}
	return s.Ratings[atcoderID], nil
}

func (s *StubSource) ListEditorials(ctx context.Context, contest string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.EditorialCalls++
	if s.EditorialsErr != nil {
		return nil, s.EditorialsErr
	}
	return s.Editorials[contest], nil
}

// CreateTestUser inserts a user row and returns its id
func CreateTestUser(t *testing.T, store *db.Store, atcoderID string) int64 {
	t.Helper()

	ctx := context.Background()
	if _, err := store.Exec(ctx, `INSERT INTO users (atcoder_id) VALUES (?)`, atcoderID); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	var id int64
	if err := store.QueryRow(ctx, `SELECT id FROM users WHERE atcoder_id = ?`, atcoderID).Scan(&id); err != nil {
		t.Fatalf("Failed to read test user id: %v", err)
	}
	return id
}

// SetTestRating writes the cached rating for a user directly
func SetTestRating(t *testing.T, store *db.Store, userID int64, rating int, fetchedAt int64) {
	t.Helper()

	if _, err := store.Exec(context.Background(), `
		UPDATE users SET rating = ?, rating_fetched_at = ? WHERE id = ?
	`, rating, fetchedAt, userID); err != nil {
		t.Fatalf("Failed to set test rating: %v", err)
	}
}

// SeedEditorial inserts an editorial row and returns its id
func SeedEditorial(t *testing.T, store *db.Store, url string) int64 {
	t.Helper()

	ctx := context.Background()
	if _, err := store.Exec(ctx, `
		INSERT INTO editorials (url) VALUES (?) ON CONFLICT (url) DO NOTHING
	`, url); err != nil {
		t.Fatalf("Failed to seed editorial: %v", err)
	}
	var id int64
	if err := store.QueryRow(ctx, `SELECT id FROM editorials WHERE url = ?`, url).Scan(&id); err != nil {
		t.Fatalf("Failed to read editorial id: %v", err)
	}
	return id
}

// MakeRequest creates an HTTP test request with a JSON body
func MakeRequest(method, path string, body interface{}) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	jsonBody, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// DecodeJSON decodes the response body into the provided struct
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
