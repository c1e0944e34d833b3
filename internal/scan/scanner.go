package scan

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mikann/tagrestore/internal/model"
	"github.com/mikann/tagrestore/internal/tags"
)

// audioExtensions are the formats the rewriter can modify. Other files
// are ignored in place; the directory structure is never altered.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
}

// MetadataReader reads the tag fields of one audio file. Satisfied by
// tags.Reader; tests substitute a fake.
type MetadataReader interface {
	ReadMetadata(path string) (*tags.Metadata, error)
}

// Scanner walks a directory tree and produces album groups.
type Scanner struct {
	reader MetadataReader
}

// NewScanner creates a Scanner reading tags through the given reader.
func NewScanner(reader MetadataReader) *Scanner {
	return &Scanner{reader: reader}
}

// Result is the outcome of a scan.
type Result struct {
	// Groups are the album groups found, sorted by name. Disc track
	// lists are already in their final order.
	Groups []*model.AlbumGroup

	// Skipped lists audio files whose tags could not be read. They are
	// left untouched and reported at the end of the run.
	Skipped []*model.ReadError
}

// Scan recursively enumerates audio files under root and groups them by
// normalized album name, partitioned by disc number.
//
// Disc numbers are resolved in precedence order: embedded disc tag, then
// a "Disc N" marker on the parent folder, then the album tag's own disc
// suffix, then disc 1.
func (s *Scanner) Scan(root string) (*Result, error) {
	result := &Result{}
	groups := make(map[string]*model.AlbumGroup)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !audioExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		meta, err := s.reader.ReadMetadata(path)
		if err != nil {
			result.Skipped = append(result.Skipped, &model.ReadError{Path: path, Err: err})
			return nil
		}
		if meta.Album == "" {
			result.Skipped = append(result.Skipped, &model.ReadError{Path: path, Err: errNoAlbumTag})
			return nil
		}

		name, suffixDisc := NormalizeAlbumName(meta.Album)
		disc := discNumber(meta, filepath.Base(filepath.Dir(path)), suffixDisc)

		group, ok := groups[name]
		if !ok {
			group = model.NewAlbumGroup(name)
			groups[name] = group
		}
		group.Add(&model.LocalTrack{
			Path:        path,
			Album:       meta.Album,
			Title:       meta.Title,
			Artist:      meta.Artist,
			TrackNumber: meta.TrackNumber,
			DiscNumber:  disc,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, group := range groups {
		for _, tracks := range group.Discs {
			sortDisc(tracks)
		}
		result.Groups = append(result.Groups, group)
	}
	sort.Slice(result.Groups, func(i, j int) bool {
		return result.Groups[i].Name < result.Groups[j].Name
	})

	return result, nil
}

// discNumber applies the disc-inference precedence for one file.
func discNumber(meta *tags.Metadata, parentFolder string, suffixDisc int) int {
	if meta.DiscNumber > 0 {
		return meta.DiscNumber
	}
	if n, ok := DiscFromFolder(parentFolder); ok {
		return n
	}
	if suffixDisc > 0 {
		return suffixDisc
	}
	return 1
}

// errNoAlbumTag marks files that carry tags but no album value; without
// it there is nothing to group by or look up.
var errNoAlbumTag = errors.New("file has no album tag")
