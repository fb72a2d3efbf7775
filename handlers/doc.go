// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP boundary of the editorial voting API.

Five POST endpoints:

  - /create-affiliation-token  issue the verification nonce
  - /create-token              verify the published nonce, issue a session token
  - /vote                      cast none/up/down on one editorial
  - /status                    aggregate + own vote for one editorial
  - /statuses                  batch form, at most 256 editorials

Handlers parse JSON, delegate to auth.Codec and votes.Engine, and render
every outcome as a 200 response with a status discriminator. Error
reasons are the underlying error strings, which the userscript shows
verbatim.
*/
package handlers
