// Package http provides an HTTP client configured for MusicBrainz and
// Cover Art Archive requests.
//
// The Client in this package handles:
//   - The User-Agent header MusicBrainz requires for API access
//   - Timeout handling
//   - JSON response decoding
//
// # Basic Usage
//
//	client := http.NewClient("tagrestore/1.0 ( example.com )")
//
//	// Decode a JSON endpoint
//	var result searchResponse
//	err := client.GetJSON(ctx, "https://musicbrainz.org/ws/2/release/?query=...", &result)
//
//	// Fetch raw bytes (cover art)
//	data, err := client.Get(ctx, "https://coverartarchive.org/release/<id>/front-500")
package http
