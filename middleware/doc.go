// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

WithLogging logs request start/completion with a per-request id. CORS
allows any origin, which the userscript deployment model requires. The
JSON helpers implement the 200-always response convention: domain errors
are encoded as {"status":"error","reason":...} payloads, never as HTTP
status codes.
*/
package middleware
