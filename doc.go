// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the editorial voting API server.

Registered AtCoder users cast a single up/down/none vote on contest
editorials. Votes are weighted into 100-point rating buckets using the
voter's rating at vote time. Identity is carried by self-verifying signed
tokens, so there is no session store.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=voting.db AFFILIATION_TOKEN_SECRET=... SESSION_TOKEN_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3950 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite path or PostgreSQL connection string
  - AFFILIATION_TOKEN_SECRET (-affiliation-secret): affiliation token hash secret
  - SESSION_TOKEN_SECRET (-session-secret): session token hash secret

Optional settings:

  - PORT (-p): Server port (default: 3950)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - ATCODER_BASE_URL (-atcoder-url): override for tests

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (tokens, voting, status)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Token issuance and verification
  - atcoder: HTML-scraping profile source
  - votes: Vote-tallying engine and status reads
  - db: Schema creation and the transactional store
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
