package model

// Candidate is one entry from a release search, enough to present a choice
// to the user without fetching the full track list.
type Candidate struct {
	// ID is the MusicBrainz release MBID.
	ID string

	// Title is the canonical release title.
	Title string

	// Artist is the joined artist credit.
	Artist string

	// Date is the release date as reported by the search, may be empty.
	Date string

	// Country is the release country code, may be empty.
	Country string

	// Status is the release status, e.g. "Official".
	Status string

	// TrackCount is the total number of tracks across all discs.
	TrackCount int
}

// ReleaseTrack is one canonical track on a release.
//
// Positions within a disc are contiguous starting at 1; the aligner relies
// on this to join local tracks by position alone.
type ReleaseTrack struct {
	// Title is the canonical, original-language track title.
	Title string

	// Artist is the joined canonical artist credit.
	Artist string

	// Disc is the medium number this track belongs to (1-indexed).
	Disc int

	// Position is the track's position within its disc (1-indexed).
	Position int
}

// Medium is one disc of a release with its ordered track list.
type Medium struct {
	// Position is the disc number (1-indexed).
	Position int

	// Tracks are the disc's tracks in position order.
	Tracks []ReleaseTrack
}

// Release is a canonical edition of an album as catalogued by MusicBrainz.
// It is fetched once per album group and read-only thereafter.
type Release struct {
	// ID is the MusicBrainz release MBID.
	ID string

	// Title is the canonical album title, applied to every bound file.
	Title string

	// Artist is the joined release-level artist credit.
	Artist string

	// Date is the release date, may be empty.
	Date string

	// Media holds one entry per disc, in disc order.
	Media []Medium
}

// TotalTracks returns the number of tracks summed across all discs.
func (r *Release) TotalTracks() int {
	n := 0
	for _, m := range r.Media {
		n += len(m.Tracks)
	}
	return n
}

// Disc returns the track list for the given disc number, or nil when the
// release has no such disc.
func (r *Release) Disc(n int) []ReleaseTrack {
	for _, m := range r.Media {
		if m.Position == n {
			return m.Tracks
		}
	}
	return nil
}
