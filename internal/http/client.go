package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps HTTP operations with the headers remote metadata services
// expect.
//
// MusicBrainz rejects requests without a meaningful User-Agent, so the
// client sets one on every request.
//
// Example usage:
//
//	client := NewClient("tagrestore/1.0 ( example.com )")
//	var resp lookupResponse
//	err := client.GetJSON(ctx, url, &resp)
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// StatusError reports a non-200 response. Callers can inspect Code to
// distinguish a missing resource from other failures.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// NewClient creates a new HTTP client with a 60 second timeout and the
// given User-Agent header value.
func NewClient(userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		userAgent: userAgent,
	}
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns a *StatusError when the response status is not 200 OK.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	return io.ReadAll(resp.Body)
}

// GetJSON performs a GET request and decodes the JSON response body into out.
//
// The Accept header is set to application/json; MusicBrainz defaults to XML
// without it.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
