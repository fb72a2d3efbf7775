// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package atcoder scrapes atcoder.jp for the three facts the voting backend
needs: a user's affiliation field, a user's rating, and the list of
editorial links on a contest's editorial page.

The ProfileSource interface is what the rest of the server depends on;
Client is the real HTML-scraping implementation, built on golang.org/x/net/html
with cascadia CSS selectors. Tests substitute a stub.

Outbound requests are rate limited (2 req burst, 1 req/s sustained) and
never retried; a scrape failure surfaces to the caller as-is.
*/
package atcoder
