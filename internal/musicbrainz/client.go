package musicbrainz

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/mikann/tagrestore/internal/http"
	"github.com/mikann/tagrestore/internal/model"
	"github.com/mikann/tagrestore/internal/musicbrainz/dto"
)

// releaseIDPattern matches a MusicBrainz release MBID (a lowercase UUID).
var releaseIDPattern = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)

// IsReleaseID reports whether the input string is a valid MusicBrainz
// release MBID. Used by the prompt loop to tell a pasted ID apart from a
// free-text album name.
func IsReleaseID(s string) bool {
	return releaseIDPattern.MatchString(strings.ToLower(strings.TrimSpace(s)))
}

// Config holds client settings. Zero values fall back to the public
// MusicBrainz and Cover Art Archive endpoints with a 1 req/s pace.
type Config struct {
	// BaseURL is the WS/2 root, e.g. "https://musicbrainz.org/ws/2".
	BaseURL string

	// CoverArtURL is the Cover Art Archive root.
	CoverArtURL string

	// UserAgent identifies this client; MusicBrainz requires one.
	UserAgent string

	// SearchLimit caps the number of search results per query.
	SearchLimit int

	// RequestInterval is the minimum delay between two requests.
	RequestInterval time.Duration
}

// Client queries the MusicBrainz Web Service and the Cover Art Archive.
//
// All methods pace their requests to at most one per RequestInterval, so a
// Client is safe to call in a tight loop without violating the API terms.
type Client struct {
	http        *http.Client
	baseURL     string
	coverArtURL string
	searchLimit int

	interval time.Duration
	mu       sync.Mutex
	last     time.Time
}

// NewClient creates a Client from the given configuration.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://musicbrainz.org/ws/2"
	}
	if cfg.CoverArtURL == "" {
		cfg.CoverArtURL = "https://coverartarchive.org"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "tagrestore/1.0"
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 10
	}
	if cfg.RequestInterval <= 0 {
		cfg.RequestInterval = time.Second
	}

	return &Client{
		http:        http.NewClient(cfg.UserAgent),
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		coverArtURL: strings.TrimRight(cfg.CoverArtURL, "/"),
		searchLimit: cfg.SearchLimit,
		interval:    cfg.RequestInterval,
	}
}

// SearchReleases queries releases by album name and optional artist.
//
// Returns zero, one or many candidates; an empty result is not an error,
// the matcher decides how to proceed.
func (c *Client) SearchReleases(ctx context.Context, album, artist string) ([]model.Candidate, error) {
	query := fmt.Sprintf("release:%s", luceneQuote(album))
	if artist != "" {
		query += fmt.Sprintf(" AND artist:%s", luceneQuote(artist))
	}

	searchURL := fmt.Sprintf("%s/release/?query=%s&limit=%d&fmt=json",
		c.baseURL, url.QueryEscape(query), c.searchLimit)

	if err := c.throttle(ctx); err != nil {
		return nil, err
	}

	var resp dto.SearchResponse
	if err := c.http.GetJSON(ctx, searchURL, &resp); err != nil {
		return nil, fmt.Errorf("search releases: %w", err)
	}

	candidates := make([]model.Candidate, 0, len(resp.Releases))
	for _, r := range resp.Releases {
		candidates = append(candidates, r.ToCandidate())
	}
	return candidates, nil
}

// LookupRelease fetches one release with its full per-disc track list.
//
// Returns model.ErrNotFound (wrapped) when the ID does not resolve.
func (c *Client) LookupRelease(ctx context.Context, id string) (*model.Release, error) {
	lookupURL := fmt.Sprintf("%s/release/%s?inc=recordings+media+artist-credits&fmt=json",
		c.baseURL, url.PathEscape(strings.TrimSpace(id)))

	if err := c.throttle(ctx); err != nil {
		return nil, err
	}

	var resp dto.LookupResponse
	if err := c.http.GetJSON(ctx, lookupURL, &resp); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("release %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("lookup release: %w", err)
	}

	return resp.ToRelease(), nil
}

// FrontCover fetches the release's front cover image, sized to at most
// 500px, from the Cover Art Archive.
//
// Returns model.ErrNotFound (wrapped) when the release has no cover art.
func (c *Client) FrontCover(ctx context.Context, releaseID string) ([]byte, error) {
	coverURL := fmt.Sprintf("%s/release/%s/front-500", c.coverArtURL, url.PathEscape(releaseID))

	if err := c.throttle(ctx); err != nil {
		return nil, err
	}

	data, err := c.http.Get(ctx, coverURL)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("cover art for %s: %w", releaseID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("fetch cover art: %w", err)
	}
	return data, nil
}

// throttle blocks until the configured interval since the previous request
// has elapsed, or the context is cancelled.
func (c *Client) throttle(ctx context.Context) error {
	c.mu.Lock()
	wait := c.interval - time.Since(c.last)
	c.last = time.Now().Add(wait)
	c.mu.Unlock()

	if wait <= 0 {
		return nil
	}
	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func isNotFound(err error) bool {
	var se *http.StatusError
	return errors.As(err, &se) && se.Code == 404
}

// luceneQuote wraps a search term in quotes, escaping embedded quotes and
// backslashes for the Lucene query syntax MusicBrainz uses.
func luceneQuote(term string) string {
	term = strings.ReplaceAll(term, `\`, `\\`)
	term = strings.ReplaceAll(term, `"`, `\"`)
	return `"` + term + `"`
}
