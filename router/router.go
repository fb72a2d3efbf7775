// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/magurofly/editorial-voting/atcoder"
	"github.com/magurofly/editorial-voting/auth"
	"github.com/magurofly/editorial-voting/cliparse"
	"github.com/magurofly/editorial-voting/db"
	"github.com/magurofly/editorial-voting/handlers"
	"github.com/magurofly/editorial-voting/middleware"
	"github.com/magurofly/editorial-voting/votes"
)

func NewRouter(store *db.Store, cfg cliparse.Config) *http.ServeMux {
	codec := auth.NewCodec(auth.Config{
		AffiliationSecret: cfg.AffiliationSecret,
		SessionSecret:     cfg.SessionSecret,
	})
	source := atcoder.NewClient(cfg.AtCoderBaseURL)
	engine := votes.NewEngine(store, source)

	// Initialize handlers
	tokenHandler := handlers.NewTokenHandler(codec, source, engine)
	voteHandler := handlers.NewVoteHandler(codec, engine)
	statusHandler := handlers.NewStatusHandler(codec, engine)

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Token issuance
	mux.HandleFunc("POST /create-affiliation-token", middleware.WithLogging(tokenHandler.CreateAffiliationToken))
	mux.HandleFunc("POST /create-token", middleware.WithLogging(tokenHandler.CreateToken))

	// Voting
	mux.HandleFunc("POST /vote", middleware.WithLogging(voteHandler.Vote))

	// Status reads (anonymous or authenticated)
	mux.HandleFunc("POST /status", middleware.WithLogging(statusHandler.Status))
	mux.HandleFunc("POST /statuses", middleware.WithLogging(statusHandler.Statuses))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("editorial-voting API v1"))
	})

	return mux
}
