package model

// LocalTrack represents a single audio file discovered during the scan.
//
// The tag fields hold the values currently stored in the file. They are the
// transliterated values this tool replaces; they are read once by the
// scanner and only mutated when the rewriter commits canonical values.
//
// DiscNumber and TrackNumber are best-effort: the scanner fills DiscNumber
// from the embedded disc tag, the parent folder name, or defaults to 1.
// TrackNumber stays 0 when the file carries no track-number tag, in which
// case filename order decides the track's position within its disc.
type LocalTrack struct {
	// Path is the absolute or root-relative location of the file.
	Path string

	// Album is the raw album tag value, including any "(Disc N)" suffix.
	// Grouping uses a normalized copy; this field is never rewritten
	// during the scan.
	Album string

	// Title is the current title tag value. May be empty.
	Title string

	// Artist is the current artist tag value. May be empty.
	Artist string

	// TrackNumber is the embedded track number, or 0 if absent.
	TrackNumber int

	// DiscNumber is the inferred disc this file belongs to (1-indexed).
	DiscNumber int
}

// Binding is the resolved one-to-one correspondence between a local file
// and a canonical track. Bindings are produced by the aligner and consumed
// by the rewriter; per disc they form a bijection between the disc's
// LocalTracks and the release's tracks for that disc.
type Binding struct {
	Local  *LocalTrack
	Remote ReleaseTrack
}
