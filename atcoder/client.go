// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package atcoder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

var (
	ErrInvalidID           = errors.New("invalid atcoder id")
	ErrInvalidContest      = errors.New("invalid contest format")
	ErrAffiliationNotFound = errors.New("affiliation not found")
)

// ProfileSource is the capability the voting engine needs from AtCoder.
// All methods are network-bound and fallible; none of them are retried.
type ProfileSource interface {
	// FetchAffiliation returns the Affiliation field of the user's
	// profile page, used as the out-of-band verification channel.
	FetchAffiliation(ctx context.Context, atcoderID string) (string, error)
	// FetchRating returns the user's current rating. Unrated users
	// (no rating row on the profile) report 0.
	FetchRating(ctx context.Context, atcoderID string) (int, error)
	// ListEditorials returns the canonical URLs of every editorial
	// linked from the contest's editorial page.
	ListEditorials(ctx context.Context, contest string) ([]string, error)
}

var (
	idPattern      = regexp.MustCompile(`^[0-9A-Za-z]{3,16}$`)
	contestPattern = regexp.MustCompile(`^[-\w]+$`)
	intPattern     = regexp.MustCompile(`-?[0-9]+`)

	profileRowSelector   = cascadia.MustCompile("#main-container table tr")
	editorialLinkSelector = cascadia.MustCompile("#main-container li a[rel=noopener]")
)

// Client scrapes atcoder.jp. Requests are rate limited so a burst of lazy
// editorial resolutions doesn't hammer the site.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
}

func NewClient(baseURL string) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: 30 * time.Second})
}

// NewClientWithHTTP creates a Client with a custom HTTP client (for testing).
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{
		http:    hc,
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
	}
}

func (c *Client) getDocument(ctx context.Context, path string) (*html.Node, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", path, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("atcoder returned status %d for %s", resp.StatusCode, path)
	}
	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// profileField finds the td text of the profile table row whose header
// matches name. Matching on the header text instead of the row position
// survives the optional rows AtCoder inserts for some accounts.
func profileField(doc *html.Node, name string) (string, bool) {
	for _, row := range profileRowSelector.MatchAll(doc) {
		var header, value string
		for cell := row.FirstChild; cell != nil; cell = cell.NextSibling {
			if cell.Type != html.ElementNode {
				continue
			}
			switch cell.Data {
			case "th":
				header = strings.TrimSpace(textContent(cell))
			case "td":
				value = strings.TrimSpace(textContent(cell))
			}
		}
		if header == name {
			return value, true
		}
	}
	return "", false
}

func (c *Client) FetchAffiliation(ctx context.Context, atcoderID string) (string, error) {
	if !idPattern.MatchString(atcoderID) {
		return "", ErrInvalidID
	}
	doc, err := c.getDocument(ctx, "/users/"+atcoderID)
	if err != nil {
		return "", err
	}
	affiliation, ok := profileField(doc, "Affiliation")
	if !ok || affiliation == "" {
		return "", ErrAffiliationNotFound
	}
	return affiliation, nil
}

func (c *Client) FetchRating(ctx context.Context, atcoderID string) (int, error) {
	if !idPattern.MatchString(atcoderID) {
		return 0, ErrInvalidID
	}
	doc, err := c.getDocument(ctx, "/users/"+atcoderID)
	if err != nil {
		return 0, err
	}
	field, ok := profileField(doc, "Rating")
	if !ok {
		// unrated
		return 0, nil
	}
	// The cell also holds the highest-rating span; the first integer is
	// the current rating.
	m := intPattern.FindString(field)
	if m == "" {
		return 0, nil
	}
	rating, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("parsing rating %q: %w", m, err)
	}
	return rating, nil
}

func (c *Client) ListEditorials(ctx context.Context, contest string) ([]string, error) {
	if !contestPattern.MatchString(contest) {
		return nil, ErrInvalidContest
	}
	doc, err := c.getDocument(ctx, "/contests/"+contest+"/editorial")
	if err != nil {
		return nil, err
	}
	var editorials []string
	for _, link := range editorialLinkSelector.MatchAll(doc) {
		href, ok := attr(link, "href")
		if !ok {
			continue
		}
		if canonical, ok := CanonicalizeEditorialURL(href); ok {
			editorials = append(editorials, canonical)
		}
	}
	return editorials, nil
}

// CanonicalizeEditorialURL maps the editorial link shapes seen on contest
// pages and sent by the userscript to one canonical form:
//
//   - /jump?url=...              -> the percent-decoded target
//   - /contests/...              -> https://atcoder.jp/contests/...
//   - https://atcoder.jp/...     -> reduced to one of the forms above
//   - any other absolute http(s) -> unchanged (already a decoded jump target)
func CanonicalizeEditorialURL(raw string) (string, bool) {
	const base = "https://atcoder.jp"
	if rest, ok := strings.CutPrefix(raw, base+"/"); ok {
		raw = "/" + rest
	}
	if encoded, ok := strings.CutPrefix(raw, "/jump?url="); ok {
		decoded, err := url.QueryUnescape(encoded)
		if err != nil {
			return "", false
		}
		return decoded, true
	}
	if strings.HasPrefix(raw, "/contests/") {
		return base + raw, true
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw, true
	}
	return "", false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
