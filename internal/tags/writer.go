package tags

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
)

// ErrUnsupportedFormat reports a write attempt on a file format the
// writer cannot modify. The file is left untouched.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Values are the canonical field values applied to one file.
type Values struct {
	Title  string
	Artist string
	Album  string

	// Date is the release date ("2001-02-03" or "2001"), may be empty.
	Date string

	// TrackNumber and DiscNumber are 1-indexed; 0 leaves the frame alone.
	TrackNumber int
	DiscNumber  int
}

// Config controls which optional fields the writer touches. Title, artist
// and album are always written; they are the point of this tool.
type Config struct {
	// WriteTrackNumbers also writes track and disc number frames.
	WriteTrackNumbers bool

	// WriteReleaseDate also writes the release date when known.
	WriteReleaseDate bool
}

// Writer applies canonical tag values to MP3 and FLAC files.
//
// Example:
//
//	writer := tags.NewWriter(tags.Config{WriteTrackNumbers: true, WriteReleaseDate: true})
//	err := writer.Write(track.Path, values, artwork)
type Writer struct {
	config Config
}

// NewWriter creates a new Writer with the given configuration.
func NewWriter(config Config) *Writer {
	return &Writer{config: config}
}

// Write applies the values to the file at path, dispatching on extension.
//
// artwork, when non-nil, is embedded as JPEG front-cover art. Formats
// other than .mp3 and .flac return ErrUnsupportedFormat.
func (w *Writer) Write(path string, v Values, artwork []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return w.writeMP3(path, v, artwork)
	case ".flac":
		return w.writeFLAC(path, v, artwork)
	default:
		return fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFormat)
	}
}

// writeMP3 updates ID3v2 frames in place.
func (w *Writer) writeMP3(path string, v Values, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetTitle(v.Title)
	tag.SetArtist(v.Artist)
	tag.SetAlbum(v.Album)

	if w.config.WriteTrackNumbers {
		if v.TrackNumber > 0 {
			tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, fmt.Sprintf("%d", v.TrackNumber))
		}
		if v.DiscNumber > 0 {
			tag.AddTextFrame("TPOS", id3v2.EncodingUTF8, fmt.Sprintf("%d", v.DiscNumber))
		}
	}

	if w.config.WriteReleaseDate && v.Date != "" {
		// TYER (ID3v2.3) carries the year, TDRC (ID3v2.4) the full date.
		tag.AddTextFrame("TYER", id3v2.EncodingUTF8, yearOf(v.Date))
		tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, v.Date)
	}

	if artwork != nil {
		tag.DeleteFrames(tag.CommonID("Attached picture"))
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/jpeg",
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     artwork,
		})
	}

	return tag.Save()
}

// yearOf extracts the year component of a release date.
func yearOf(date string) string {
	if len(date) > 4 {
		return date[:4]
	}
	return date
}
