// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

Flags take precedence over environment variables:

	-p / PORT                           server port (default 3950)
	-d / DATABASE_URL                   connection string or sqlite path
	-t / DATABASE_TYPE                  "sqlite" (default) or "postgres"
	-atcoder-url / ATCODER_BASE_URL     AtCoder base URL (default https://atcoder.jp)
	-affiliation-secret / AFFILIATION_TOKEN_SECRET
	-session-secret / SESSION_TOKEN_SECRET

Both token secrets are required and must differ from each other. Secrets
should come from the environment in production; the flags exist for local
development only.
*/
package cliparse
