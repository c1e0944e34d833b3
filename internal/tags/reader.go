package tags

import (
	"os"

	"github.com/dhowden/tag"
)

// Metadata holds the tag fields read from a local file. Any field may be
// its zero value when the file does not carry the corresponding tag.
type Metadata struct {
	Album  string
	Title  string
	Artist string

	// TrackNumber is 0 when the file has no track-number tag.
	TrackNumber int

	// DiscNumber is 0 when the file has no disc-number tag; the scanner
	// falls back to folder-name inference.
	DiscNumber int
}

// Reader reads metadata from audio files.
//
// A single Reader handles both MP3 (ID3v1/v2) and FLAC (vorbis comments);
// format detection is done from the file content, not the extension.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadMetadata reads the tag fields of the file at path.
//
// Returns an error when the file cannot be opened or carries no
// recognizable tags; the caller decides whether that skips the file.
func (r *Reader) ReadMetadata(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	trackNum, _ := t.Track()
	discNum, _ := t.Disc()

	return &Metadata{
		Album:       t.Album(),
		Title:       t.Title(),
		Artist:      t.Artist(),
		TrackNumber: trackNum,
		DiscNumber:  discNum,
	}, nil
}
