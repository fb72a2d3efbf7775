// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the HTTP routes to their handlers.

NewRouter builds the token codec, the AtCoder scraping client and the
voting engine from configuration, then registers the five POST endpoints
plus /health and a root banner on a net/http ServeMux using Go 1.22+
method patterns.
*/
package router
