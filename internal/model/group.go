package model

import "sort"

// AlbumGroup is the set of local files inferred to belong to the same
// release, partitioned by disc number.
//
// The group's Name is the album tag after disc-suffix stripping, so
// "Best Album (Disc 1)" and "Best Album (Disc 2)" land in the same group.
// Every LocalTrack produced by the scanner belongs to exactly one group.
//
// Example:
//
//	group := model.NewAlbumGroup("Best Album")
//	group.Add(&model.LocalTrack{Path: "d1/01.mp3", DiscNumber: 1})
//	group.Add(&model.LocalTrack{Path: "d2/01.mp3", DiscNumber: 2})
//	group.DiscNumbers() // [1 2]
//	group.TotalTracks() // 2
type AlbumGroup struct {
	// Name is the normalized album name used as the grouping key and as
	// the search term for release lookup.
	Name string

	// Discs maps a disc number to that disc's tracks. The per-disc order
	// is established by the scanner (track-number tag, then filename).
	Discs map[int][]*LocalTrack
}

// NewAlbumGroup creates an empty group for the given normalized album name.
func NewAlbumGroup(name string) *AlbumGroup {
	return &AlbumGroup{
		Name:  name,
		Discs: make(map[int][]*LocalTrack),
	}
}

// Add appends a track to its disc partition.
func (g *AlbumGroup) Add(t *LocalTrack) {
	g.Discs[t.DiscNumber] = append(g.Discs[t.DiscNumber], t)
}

// TotalTracks returns the number of files across all disc partitions.
func (g *AlbumGroup) TotalTracks() int {
	n := 0
	for _, tracks := range g.Discs {
		n += len(tracks)
	}
	return n
}

// DiscNumbers returns the disc numbers present locally, in ascending order.
func (g *AlbumGroup) DiscNumbers() []int {
	nums := make([]int, 0, len(g.Discs))
	for n := range g.Discs {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// Tracks returns every track in the group, discs in ascending order and
// each disc in its scan order.
func (g *AlbumGroup) Tracks() []*LocalTrack {
	var all []*LocalTrack
	for _, n := range g.DiscNumbers() {
		all = append(all, g.Discs[n]...)
	}
	return all
}

// ArtistHint returns the most common non-empty artist tag value across the
// group's tracks, or "" when no track carries an artist. It is used as a
// best-guess search hint; ties resolve to the artist seen first.
func (g *AlbumGroup) ArtistHint() string {
	counts := make(map[string]int)
	var order []string
	for _, t := range g.Tracks() {
		if t.Artist == "" {
			continue
		}
		if counts[t.Artist] == 0 {
			order = append(order, t.Artist)
		}
		counts[t.Artist]++
	}

	best := ""
	bestCount := 0
	for _, artist := range order {
		if counts[artist] > bestCount {
			best = artist
			bestCount = counts[artist]
		}
	}
	return best
}
