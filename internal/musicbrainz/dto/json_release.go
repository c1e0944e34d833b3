package dto

import (
	"strings"

	"github.com/mikann/tagrestore/internal/model"
)

// ArtistCredit is one entry of a MusicBrainz artist credit. The full
// credit is the concatenation of every name with its join phrase
// ("feat.", " & ", ...).
type ArtistCredit struct {
	Name       string `json:"name"`
	JoinPhrase string `json:"joinphrase"`
}

// JoinCredit flattens an artist credit list into a single display string.
func JoinCredit(credits []ArtistCredit) string {
	var b strings.Builder
	for _, c := range credits {
		b.WriteString(c.Name)
		b.WriteString(c.JoinPhrase)
	}
	return b.String()
}

// SearchResponse is the deserialized body of /ws/2/release/?query=...
type SearchResponse struct {
	Releases []SearchRelease `json:"releases"`
}

// SearchRelease is one search result entry. Search results carry the
// total track count but not the track list itself.
type SearchRelease struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Status       string         `json:"status"`
	Country      string         `json:"country"`
	Date         string         `json:"date"`
	TrackCount   int            `json:"track-count"`
	ArtistCredit []ArtistCredit `json:"artist-credit"`
}

// ToCandidate converts a search result to a model.Candidate.
func (sr *SearchRelease) ToCandidate() model.Candidate {
	return model.Candidate{
		ID:         sr.ID,
		Title:      sr.Title,
		Artist:     JoinCredit(sr.ArtistCredit),
		Date:       sr.Date,
		Country:    sr.Country,
		Status:     sr.Status,
		TrackCount: sr.TrackCount,
	}
}

// LookupResponse is the deserialized body of
// /ws/2/release/<id>?inc=recordings+media+artist-credits.
type LookupResponse struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Date         string         `json:"date"`
	ArtistCredit []ArtistCredit `json:"artist-credit"`
	Media        []Medium       `json:"media"`
}

// Medium is one disc of a release.
type Medium struct {
	Position int     `json:"position"`
	Tracks   []Track `json:"tracks"`
}

// Track is one track on a medium. The recording carries the canonical
// title and per-track artist credit.
type Track struct {
	Position     int            `json:"position"`
	Title        string         `json:"title"`
	ArtistCredit []ArtistCredit `json:"artist-credit"`
	Recording    *Recording     `json:"recording"`
}

// Recording is the recording linked from a track.
type Recording struct {
	Title        string         `json:"title"`
	ArtistCredit []ArtistCredit `json:"artist-credit"`
}

// ToRelease converts a lookup response to a model.Release.
//
// Track titles and artists prefer the linked recording and fall back to
// the track entry itself; per-track credit falls back to the release
// credit when both are missing.
func (lr *LookupResponse) ToRelease() *model.Release {
	release := &model.Release{
		ID:     lr.ID,
		Title:  lr.Title,
		Artist: JoinCredit(lr.ArtistCredit),
		Date:   lr.Date,
	}

	for _, m := range lr.Media {
		medium := model.Medium{Position: m.Position}
		for _, t := range m.Tracks {
			title := t.Title
			credit := t.ArtistCredit
			if t.Recording != nil {
				if t.Recording.Title != "" {
					title = t.Recording.Title
				}
				if len(t.Recording.ArtistCredit) > 0 {
					credit = t.Recording.ArtistCredit
				}
			}

			artist := JoinCredit(credit)
			if artist == "" {
				artist = release.Artist
			}

			medium.Tracks = append(medium.Tracks, model.ReleaseTrack{
				Title:    title,
				Artist:   artist,
				Disc:     m.Position,
				Position: t.Position,
			})
		}
		release.Media = append(release.Media, medium)
	}

	return release
}
