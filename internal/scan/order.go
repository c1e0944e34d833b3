package scan

import (
	"sort"

	"github.com/mikann/tagrestore/internal/model"
)

// An orderStrategy tries to establish the track order within one disc.
// It returns false when it cannot apply, and the next strategy is tried.
// Strategies are attempted in declaration order so the tie-break policy
// stays explicit.
type orderStrategy func(tracks []*model.LocalTrack) bool

var orderStrategies = []orderStrategy{
	byTrackNumber,
	byFileName,
}

// sortDisc orders a disc's tracks in place using the first applicable
// strategy. byFileName always applies, so the order is always defined.
func sortDisc(tracks []*model.LocalTrack) {
	for _, strategy := range orderStrategies {
		if strategy(tracks) {
			return
		}
	}
}

// byTrackNumber sorts by the embedded track-number tag. It applies only
// when every track carries one, with filename as a stable tie-break for
// duplicate numbers.
func byTrackNumber(tracks []*model.LocalTrack) bool {
	for _, t := range tracks {
		if t.TrackNumber <= 0 {
			return false
		}
	}
	sort.Slice(tracks, func(i, j int) bool {
		if tracks[i].TrackNumber != tracks[j].TrackNumber {
			return tracks[i].TrackNumber < tracks[j].TrackNumber
		}
		return tracks[i].Path < tracks[j].Path
	})
	return true
}

// byFileName sorts lexicographically by path. Always applies.
func byFileName(tracks []*model.LocalTrack) bool {
	sort.Slice(tracks, func(i, j int) bool {
		return tracks[i].Path < tracks[j].Path
	})
	return true
}
