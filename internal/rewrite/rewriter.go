// Package rewrite commits canonical metadata onto matched local files.
//
// Each binding is applied independently: the canonical title, artist and
// album replace the transliterated tag values, and the file is optionally
// renamed after its canonical title. A failure on one file never blocks
// its siblings.
package rewrite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mikann/tagrestore/internal/ioutils"
	"github.com/mikann/tagrestore/internal/model"
	"github.com/mikann/tagrestore/internal/tags"
)

// TagWriter applies tag values to one audio file. Satisfied by
// tags.Writer; tests substitute a fake.
type TagWriter interface {
	Write(path string, v tags.Values, artwork []byte) error
}

// Config controls the rewriter's file handling.
type Config struct {
	// RenameFiles regenerates each file's name from its canonical title.
	// Extension and folder are always preserved.
	RenameFiles bool

	// FileNameFormat is the rename template. Supported placeholders are
	// {tracknum} (zero-padded position) and {title}.
	FileNameFormat string
}

// Result reports the per-file outcome of one album's rewrite.
type Result struct {
	// Written lists the final paths of successfully rewritten files.
	Written []string

	// Failed lists files whose write or rename failed. The rest of the
	// album is unaffected.
	Failed []*model.WriteError
}

// Rewriter applies bindings to disk.
type Rewriter struct {
	writer TagWriter
	config Config
}

// NewRewriter creates a Rewriter committing tags through the given writer.
func NewRewriter(writer TagWriter, config Config) *Rewriter {
	return &Rewriter{writer: writer, config: config}
}

// Apply writes the canonical values of every binding to its local file,
// one file at a time. artwork, when non-nil, is embedded into each file.
//
// A failed file is recorded and skipped; the remaining bindings still
// proceed. Folder names are never altered.
func (r *Rewriter) Apply(bindings []model.Binding, release *model.Release, artwork []byte) *Result {
	result := &Result{}

	for _, b := range bindings {
		artist := b.Remote.Artist
		if artist == "" {
			artist = release.Artist
		}
		values := tags.Values{
			Title:       b.Remote.Title,
			Artist:      artist,
			Album:       release.Title,
			Date:        release.Date,
			TrackNumber: b.Remote.Position,
			DiscNumber:  b.Remote.Disc,
		}

		if err := r.writer.Write(b.Local.Path, values, artwork); err != nil {
			result.Failed = append(result.Failed, &model.WriteError{Path: b.Local.Path, Err: err})
			continue
		}

		path := b.Local.Path
		if r.config.RenameFiles {
			renamed, err := r.rename(path, b.Remote)
			if err != nil {
				result.Failed = append(result.Failed, &model.WriteError{Path: path, Err: err})
				continue
			}
			path = renamed
		}

		b.Local.Path = path
		b.Local.Title = values.Title
		b.Local.Artist = values.Artist
		b.Local.Album = values.Album
		result.Written = append(result.Written, path)
	}

	return result
}

// rename moves the file to its canonical name within the same folder and
// returns the new path. A file already carrying the target name is left
// alone.
func (r *Rewriter) rename(path string, remote model.ReleaseTrack) (string, error) {
	name := FileName(r.config.FileNameFormat, remote)
	target := filepath.Join(filepath.Dir(path), name+filepath.Ext(path))
	if target == path {
		return path, nil
	}
	if err := os.Rename(path, target); err != nil {
		return "", fmt.Errorf("rename to %s: %w", filepath.Base(target), err)
	}
	return target, nil
}

// FileName renders the rename template for one track, without extension.
// The result is sanitized for cross-platform use.
func FileName(format string, remote model.ReleaseTrack) string {
	name := strings.ReplaceAll(format, "{tracknum}", fmt.Sprintf("%02d", remote.Position))
	name = strings.ReplaceAll(name, "{title}", remote.Title)
	return ioutils.SanitizeFileName(name)
}
