// Package model defines the core data structures used throughout
// tagrestore.
//
// # LocalTrack and AlbumGroup
//
// LocalTrack is one audio file on disk together with the tag values it
// currently carries. The scanner collects LocalTracks into AlbumGroups,
// keyed by the album tag after disc-suffix normalization and partitioned
// by disc number:
//
//	group := model.NewAlbumGroup("Best Album")
//	group.Add(&model.LocalTrack{Path: "a.mp3", DiscNumber: 1})
//	fmt.Println(group.TotalTracks()) // 1
//
// # Release and Binding
//
// Release is the canonical, original-language edition of an album as
// catalogued by MusicBrainz, with one ordered track list per disc.
// A Binding associates one LocalTrack with exactly one ReleaseTrack;
// the aligner guarantees the set of Bindings for a disc is a bijection.
//
// # Errors
//
// The package also defines the error taxonomy shared by the scanner,
// matcher and rewriter: ReadError, WriteError, CountMismatchError and
// the ErrNotFound/ErrAborted sentinels.
package model
