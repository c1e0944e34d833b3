package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that a search returned no candidate releases or
	// that a release ID did not resolve. Recoverable by re-prompting.
	ErrNotFound = errors.New("release not found")

	// ErrAborted reports that the user declined to resolve an album
	// interactively. The album group is skipped untouched.
	ErrAborted = errors.New("aborted by user")
)

// ReadError reports that a file's required tags could not be read.
// The file is skipped; the run continues.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read tags from %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports that a tag write or rename failed on a specific file.
// The file is skipped; sibling files in the same album still proceed.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write tags to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// CountMismatchError reports that local and remote track counts disagree,
// either in total or for a single disc. It fails the whole album group:
// guessing a partial mapping would risk silently mislabeling tracks.
//
// Disc is 0 for a total-count mismatch.
type CountMismatchError struct {
	Album  string
	Disc   int
	Local  int
	Remote int
}

func (e *CountMismatchError) Error() string {
	if e.Disc > 0 {
		return fmt.Sprintf("track count mismatch for %q disc %d: %d local files vs %d release tracks",
			e.Album, e.Disc, e.Local, e.Remote)
	}
	return fmt.Sprintf("track count mismatch for %q: %d local files vs %d release tracks",
		e.Album, e.Local, e.Remote)
}
