// Package musicbrainz provides a client for the MusicBrainz Web Service
// (WS/2) and the Cover Art Archive.
//
// The package handles the two query modes the matcher needs:
//
//  1. Free-text release search by album name and optional artist
//  2. Direct release lookup by MBID, including the full per-disc track list
//
// # Searching
//
//	client := musicbrainz.NewClient(musicbrainz.Config{UserAgent: ua})
//	candidates, err := client.SearchReleases(ctx, "Best Album", "Some Artist")
//	for _, c := range candidates {
//	    fmt.Printf("%s by %s (%d tracks)\n", c.Title, c.Artist, c.TrackCount)
//	}
//
// # Lookup
//
//	release, err := client.LookupRelease(ctx, "d6010be3-98f8-422c-a6c9-787e2e491e58")
//	for _, medium := range release.Media {
//	    fmt.Printf("disc %d: %d tracks\n", medium.Position, len(medium.Tracks))
//	}
//
// # Rate Limiting
//
// MusicBrainz allows one request per second for anonymous clients. The
// client paces all outgoing requests accordingly, so callers never need
// to sleep between calls.
package musicbrainz
