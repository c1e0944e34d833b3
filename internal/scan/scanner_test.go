package scan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikann/tagrestore/internal/tags"
)

// fakeReader serves canned metadata keyed by base filename.
type fakeReader struct {
	meta map[string]*tags.Metadata
	errs map[string]error
}

func (f *fakeReader) ReadMetadata(path string) (*tags.Metadata, error) {
	base := filepath.Base(path)
	if err, ok := f.errs[base]; ok {
		return nil, err
	}
	if m, ok := f.meta[base]; ok {
		return m, nil
	}
	return nil, errors.New("no metadata")
}

// touch creates an empty file, including parent directories.
func touch(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScan_GroupsDiscSuffixedAlbums(t *testing.T) {
	root := t.TempDir()
	touch(t,
		filepath.Join(root, "Best Album", "Disc 1", "01.mp3"),
		filepath.Join(root, "Best Album", "Disc 1", "02.mp3"),
		filepath.Join(root, "Best Album", "Disc 2", "01.mp3"),
		filepath.Join(root, "Best Album", "cover.jpg"), // ignored
	)

	reader := &fakeReader{meta: map[string]*tags.Metadata{
		"01.mp3": {Album: "Best Album (Disc 1)", Artist: "Artist"},
		"02.mp3": {Album: "Best Album (Disc 1)", Artist: "Artist"},
	}}
	// Disc 2's file shares a base name with disc 1's; rely on folder
	// inference by serving the same album tag for both.

	result, err := NewScanner(reader).Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(result.Groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(result.Groups))
	}
	group := result.Groups[0]
	if group.Name != "Best Album" {
		t.Errorf("group name = %q, want %q", group.Name, "Best Album")
	}
	if len(group.Discs[1]) != 2 || len(group.Discs[2]) != 1 {
		t.Errorf("disc partitions wrong: disc1=%d disc2=%d",
			len(group.Discs[1]), len(group.Discs[2]))
	}

	// The raw album tag survives normalization untouched.
	if group.Discs[1][0].Album != "Best Album (Disc 1)" {
		t.Errorf("raw album tag mutated: %q", group.Discs[1][0].Album)
	}
}

func TestScan_SkipsUnreadableFiles(t *testing.T) {
	root := t.TempDir()
	touch(t,
		filepath.Join(root, "ok.mp3"),
		filepath.Join(root, "broken.mp3"),
		filepath.Join(root, "untagged.flac"),
	)

	reader := &fakeReader{
		meta: map[string]*tags.Metadata{
			"ok.mp3":        {Album: "Album"},
			"untagged.flac": {}, // no album tag
		},
		errs: map[string]error{
			"broken.mp3": errors.New("no tags found"),
		},
	}

	result, err := NewScanner(reader).Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(result.Groups) != 1 || result.Groups[0].TotalTracks() != 1 {
		t.Fatalf("expected one group with one track, got %+v", result.Groups)
	}
	if len(result.Skipped) != 2 {
		t.Fatalf("got %d skipped, want 2", len(result.Skipped))
	}
}

func TestScan_TrackOrderPrefersEmbeddedNumbers(t *testing.T) {
	root := t.TempDir()
	touch(t,
		filepath.Join(root, "b-second.mp3"),
		filepath.Join(root, "a-first.mp3"),
	)

	// Embedded numbers contradict filename order; they must win.
	reader := &fakeReader{meta: map[string]*tags.Metadata{
		"a-first.mp3":  {Album: "Album", TrackNumber: 2},
		"b-second.mp3": {Album: "Album", TrackNumber: 1},
	}}

	result, err := NewScanner(reader).Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	disc := result.Groups[0].Discs[1]
	if filepath.Base(disc[0].Path) != "b-second.mp3" {
		t.Errorf("first track = %s, want b-second.mp3", disc[0].Path)
	}
}

func TestScan_TrackOrderFallsBackToFileName(t *testing.T) {
	root := t.TempDir()
	touch(t,
		filepath.Join(root, "02 b.mp3"),
		filepath.Join(root, "01 a.mp3"),
	)

	// One missing track number disables the embedded-number strategy
	// for the whole disc.
	reader := &fakeReader{meta: map[string]*tags.Metadata{
		"01 a.mp3": {Album: "Album"},
		"02 b.mp3": {Album: "Album", TrackNumber: 1},
	}}

	result, err := NewScanner(reader).Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	disc := result.Groups[0].Discs[1]
	if filepath.Base(disc[0].Path) != "01 a.mp3" {
		t.Errorf("first track = %s, want 01 a.mp3", disc[0].Path)
	}
}

func TestDiscNumberPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		meta       *tags.Metadata
		folder     string
		suffixDisc int
		want       int
	}{
		{"embedded tag wins", &tags.Metadata{DiscNumber: 3}, "Disc 1", 2, 3},
		{"folder next", &tags.Metadata{}, "Disc 2", 1, 2},
		{"album suffix next", &tags.Metadata{}, "Best Album", 2, 2},
		{"default disc 1", &tags.Metadata{}, "Best Album", 0, 1},
		{"unrelated subfolder stays disc 1", &tags.Metadata{}, "Bonus Tracks", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := discNumber(tt.meta, tt.folder, tt.suffixDisc); got != tt.want {
				t.Errorf("discNumber() = %d, want %d", got, tt.want)
			}
		})
	}
}
