package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/mikann/tagrestore/internal/config"
	"github.com/mikann/tagrestore/internal/ioutils"
	"github.com/mikann/tagrestore/internal/match"
	"github.com/mikann/tagrestore/internal/model"
	"github.com/mikann/tagrestore/internal/musicbrainz"
	"github.com/mikann/tagrestore/internal/prompt"
	"github.com/mikann/tagrestore/internal/rewrite"
	"github.com/mikann/tagrestore/internal/scan"
	"github.com/mikann/tagrestore/internal/tags"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a restoration progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Prompter resolves ambiguous albums interactively. Satisfied by
// prompt.Terminal; the TUI provides its own implementation.
type Prompter interface {
	Disambiguate(group *model.AlbumGroup, candidates []model.Candidate) (prompt.Choice, error)
}

// Narrow views of the concrete components, substituted by fakes in tests.
type (
	scanner interface {
		Scan(root string) (*scan.Result, error)
	}
	resolver interface {
		Resolve(ctx context.Context, group *model.AlbumGroup) (*match.Resolution, error)
		Search(ctx context.Context, group *model.AlbumGroup, query string) (*match.Resolution, error)
		Lookup(ctx context.Context, id string) (*model.Release, error)
	}
	coverFetcher interface {
		FrontCover(ctx context.Context, releaseID string) ([]byte, error)
	}
	tagRewriter interface {
		Apply(bindings []model.Binding, release *model.Release, artwork []byte) *rewrite.Result
	}
)

// GroupFailure records one album group that was skipped whole.
type GroupFailure struct {
	Album string
	Err   error
}

// Summary is the end-of-run report.
type Summary struct {
	// AlbumsRestored counts groups whose files were written.
	AlbumsRestored int

	// FilesWritten counts successfully rewritten files across all groups.
	FilesWritten int

	// SkippedFiles are scan-time read failures, left untouched.
	SkippedFiles []*model.ReadError

	// FailedFiles are write-time failures; their siblings still proceeded.
	FailedFiles []*model.WriteError

	// FailedGroups are albums skipped whole, with the reason.
	FailedGroups []GroupFailure
}

// Runner executes restoration runs.
type Runner struct {
	settings *config.Settings

	scanner  scanner
	matcher  resolver
	covers   coverFetcher
	rewriter tagRewriter
	images   *ioutils.ImageService
	prompter Prompter

	// DryRun resolves and aligns but writes nothing.
	DryRun bool

	groupsDone  int32
	groupsTotal int32

	onProgress func(ProgressEvent)
}

// NewRunner wires a Runner from settings. onProgress may be nil.
func NewRunner(settings *config.Settings, prompter Prompter, onProgress func(ProgressEvent)) *Runner {
	client := musicbrainz.NewClient(musicbrainz.Config{
		BaseURL:         settings.MusicBrainzURL,
		CoverArtURL:     settings.CoverArtURL,
		UserAgent:       settings.UserAgent,
		SearchLimit:     settings.SearchLimit,
		RequestInterval: time.Duration(settings.RequestInterval * float64(time.Second)),
	})
	writer := tags.NewWriter(tags.Config{
		WriteTrackNumbers: settings.WriteTrackNumbers,
		WriteReleaseDate:  settings.WriteReleaseDate,
	})

	return &Runner{
		settings: settings,
		scanner:  scan.NewScanner(tags.NewReader()),
		matcher:  match.NewMatcher(client),
		covers:   client,
		rewriter: rewrite.NewRewriter(writer, rewrite.Config{
			RenameFiles:    settings.RenameFiles,
			FileNameFormat: settings.FileNameFormat,
		}),
		images:     ioutils.NewImageService(),
		prompter:   prompter,
		onProgress: onProgress,
	}
}

// Run scans root and restores every album group found, one after another.
//
// The returned error is non-nil only for run-level failures (unreadable
// root, cancelled context); per-album and per-file problems land in the
// Summary instead.
func (r *Runner) Run(ctx context.Context, root string) (*Summary, error) {
	r.progress(ProgressEvent{Message: fmt.Sprintf("Scanning %s", root), Level: LevelInfo})

	scanned, err := r.scanner.Scan(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	summary := &Summary{SkippedFiles: scanned.Skipped}
	for _, skipped := range scanned.Skipped {
		r.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s: %v", skipped.Path, skipped.Err), Level: LevelWarning})
	}
	r.progress(ProgressEvent{Message: fmt.Sprintf("Found %d album(s)", len(scanned.Groups)), Level: LevelInfo})
	atomic.StoreInt32(&r.groupsTotal, int32(len(scanned.Groups)))

	for _, group := range scanned.Groups {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		r.processGroup(ctx, group, summary)
		atomic.AddInt32(&r.groupsDone, 1)
	}

	return summary, nil
}

// Progress returns how many album groups have finished out of the total
// found by the scan. Safe to call from another goroutine while Run is in
// flight.
func (r *Runner) Progress() (done, total int32) {
	return atomic.LoadInt32(&r.groupsDone), atomic.LoadInt32(&r.groupsTotal)
}

// processGroup takes one album group through resolve, align and rewrite.
// Every failure mode here is contained: it is recorded and the run
// continues with the next group.
func (r *Runner) processGroup(ctx context.Context, group *model.AlbumGroup, summary *Summary) {
	r.progress(ProgressEvent{Message: fmt.Sprintf("Matching %q (%d files, %d disc(s))",
		group.Name, group.TotalTracks(), len(group.Discs)), Level: LevelInfo})

	release, err := r.resolveGroup(ctx, group)
	if err != nil {
		r.failGroup(group, err, summary)
		return
	}
	r.progress(ProgressEvent{Message: fmt.Sprintf("Matched %q to %s - %s (%s)",
		group.Name, release.Artist, release.Title, release.ID), Level: LevelVerbose})

	bindings, err := match.Align(group, release)
	if err != nil {
		r.failGroup(group, err, summary)
		return
	}

	if r.DryRun {
		r.progress(ProgressEvent{Message: fmt.Sprintf("Dry run: would rewrite %d file(s) for %s", len(bindings), release.Title), Level: LevelInfo})
		return
	}

	artwork := r.fetchArtwork(ctx, release)

	result := r.rewriter.Apply(bindings, release, artwork)
	for _, failed := range result.Failed {
		r.progress(ProgressEvent{Message: failed.Error(), Level: LevelWarning})
	}
	summary.FailedFiles = append(summary.FailedFiles, result.Failed...)
	summary.FilesWritten += len(result.Written)

	if len(result.Written) > 0 {
		summary.AlbumsRestored++
		r.progress(ProgressEvent{Message: fmt.Sprintf("Restored %s (%d/%d files)",
			release.Title, len(result.Written), len(bindings)), Level: LevelSuccess})
	}
}

// resolveGroup runs the automatic path, then loops through interactive
// disambiguation until a validated release is obtained or the user gives
// up.
func (r *Runner) resolveGroup(ctx context.Context, group *model.AlbumGroup) (*model.Release, error) {
	res, err := r.matcher.Resolve(ctx, group)
	if err != nil {
		return nil, err
	}

	for {
		if res.Kind == match.Resolved {
			return res.Release, nil
		}
		if res.Kind == match.NotFound {
			r.progress(ProgressEvent{Message: fmt.Sprintf("No releases found for %q", group.Name), Level: LevelWarning})
		}

		choice, err := r.prompter.Disambiguate(group, res.Candidates)
		if err != nil {
			return nil, err
		}

		switch choice.Kind {
		case prompt.ChoiceAbort:
			return nil, model.ErrAborted

		case prompt.ChoiceRelease:
			release, err := r.matcher.Lookup(ctx, choice.ReleaseID)
			if errors.Is(err, model.ErrNotFound) {
				r.progress(ProgressEvent{Message: fmt.Sprintf("Release %s not found", choice.ReleaseID), Level: LevelWarning})
				continue
			}
			if err != nil {
				return nil, err
			}
			if err := match.Validate(group, release); err != nil {
				r.progress(ProgressEvent{Message: err.Error(), Level: LevelWarning})
				continue
			}
			return release, nil

		case prompt.ChoiceSearch:
			res, err = r.matcher.Search(ctx, group, choice.Query)
			if err != nil {
				return nil, err
			}
		}
	}
}

// fetchArtwork returns cover art ready for embedding, or nil when cover
// art is disabled, missing, or unusable. A missing cover never fails the
// album.
func (r *Runner) fetchArtwork(ctx context.Context, release *model.Release) []byte {
	if !r.settings.EmbedCoverArt {
		return nil
	}

	data, err := r.covers.FrontCover(ctx, release.ID)
	if err != nil {
		r.progress(ProgressEvent{Message: fmt.Sprintf("No cover art for %s: %v", release.Title, err), Level: LevelVerbose})
		return nil
	}

	if r.settings.CoverArtResize {
		data, err = r.images.ResizeImage(ctx, data, r.settings.CoverArtMaxSize, r.settings.CoverArtMaxSize)
	} else {
		data, err = r.images.ConvertToJPEG(ctx, data)
	}
	if err != nil {
		r.progress(ProgressEvent{Message: fmt.Sprintf("Unusable cover art for %s: %v", release.Title, err), Level: LevelWarning})
		return nil
	}
	return data
}

func (r *Runner) failGroup(group *model.AlbumGroup, err error, summary *Summary) {
	summary.FailedGroups = append(summary.FailedGroups, GroupFailure{Album: group.Name, Err: err})
	level := LevelError
	if errors.Is(err, model.ErrAborted) {
		level = LevelWarning
	}
	r.progress(ProgressEvent{Message: fmt.Sprintf("Skipping album %q: %v", group.Name, err), Level: level})
}

func (r *Runner) progress(event ProgressEvent) {
	if r.onProgress != nil {
		r.onProgress(event)
	}
}
