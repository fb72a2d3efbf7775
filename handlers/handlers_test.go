// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/magurofly/editorial-voting/auth"
	"github.com/magurofly/editorial-voting/db"
	"github.com/magurofly/editorial-voting/testutil"
	"github.com/magurofly/editorial-voting/votes"
)

const (
	testContest   = "abc300"
	testEditorial = "https://atcoder.jp/contests/abc300/editorial/1234"
)

type testEnv struct {
	store  *db.Store
	source *testutil.StubSource
	codec  *auth.Codec
	engine *votes.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := testutil.SetupTestStore(t)
	source := &testutil.StubSource{
		Affiliations: map[string]string{},
		Ratings:      map[string]int{},
		Editorials:   map[string][]string{},
	}
	return &testEnv{
		store:  store,
		source: source,
		codec:  testutil.NewTestCodec(),
		engine: votes.NewEngine(store, source),
	}
}

// sessionToken registers the handle with a cached rating and returns a
// valid bearer token for it.
func (env *testEnv) sessionToken(t *testing.T, atcoderID string, rating int) string {
	t.Helper()

	userID, err := env.engine.EnsureUser(context.Background(), atcoderID)
	if err != nil {
		t.Fatalf("EnsureUser() error = %v", err)
	}
	testutil.SetTestRating(t, env.store, userID, rating, time.Now().Unix())

	token, err := env.codec.IssueSessionToken(atcoderID, userID)
	if err != nil {
		t.Fatalf("IssueSessionToken() error = %v", err)
	}
	return token
}
