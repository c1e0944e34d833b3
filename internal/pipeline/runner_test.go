package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/mikann/tagrestore/internal/config"
	"github.com/mikann/tagrestore/internal/match"
	"github.com/mikann/tagrestore/internal/model"
	"github.com/mikann/tagrestore/internal/prompt"
	"github.com/mikann/tagrestore/internal/rewrite"
	"github.com/mikann/tagrestore/internal/scan"
)

type fakeScanner struct {
	result *scan.Result
}

func (f *fakeScanner) Scan(string) (*scan.Result, error) { return f.result, nil }

type fakeResolver struct {
	resolution *match.Resolution
	searches   []*match.Resolution
	releases   map[string]*model.Release
}

func (f *fakeResolver) Resolve(context.Context, *model.AlbumGroup) (*match.Resolution, error) {
	return f.resolution, nil
}

func (f *fakeResolver) Search(context.Context, *model.AlbumGroup, string) (*match.Resolution, error) {
	res := f.searches[0]
	f.searches = f.searches[1:]
	return res, nil
}

func (f *fakeResolver) Lookup(_ context.Context, id string) (*model.Release, error) {
	if r, ok := f.releases[id]; ok {
		return r, nil
	}
	return nil, model.ErrNotFound
}

// fakePrompter plays back a script of choices.
type fakePrompter struct {
	script []prompt.Choice
	asked  int
}

func (f *fakePrompter) Disambiguate(*model.AlbumGroup, []model.Candidate) (prompt.Choice, error) {
	choice := f.script[f.asked]
	f.asked++
	return choice, nil
}

type fakeRewriter struct {
	applied []model.Binding
	result  *rewrite.Result
}

func (f *fakeRewriter) Apply(bindings []model.Binding, _ *model.Release, _ []byte) *rewrite.Result {
	f.applied = append(f.applied, bindings...)
	if f.result != nil {
		return f.result
	}
	result := &rewrite.Result{}
	for _, b := range bindings {
		result.Written = append(result.Written, b.Local.Path)
	}
	return result
}

func groupOf(name string, discCounts ...int) *model.AlbumGroup {
	g := model.NewAlbumGroup(name)
	for disc, count := range discCounts {
		for i := 0; i < count; i++ {
			g.Add(&model.LocalTrack{Path: name, DiscNumber: disc + 1, TrackNumber: i + 1})
		}
	}
	return g
}

func releaseOf(id, title string, discLens ...int) *model.Release {
	r := &model.Release{ID: id, Title: title, Artist: "歌手"}
	for d, n := range discLens {
		m := model.Medium{Position: d + 1}
		for i := 0; i < n; i++ {
			m.Tracks = append(m.Tracks, model.ReleaseTrack{Disc: d + 1, Position: i + 1})
		}
		r.Media = append(r.Media, m)
	}
	return r
}

func testRunner(s *fakeScanner, m *fakeResolver, p Prompter, w *fakeRewriter) *Runner {
	return &Runner{
		settings: config.DefaultSettings(),
		scanner:  s,
		matcher:  m,
		rewriter: w,
		prompter: p,
	}
}

func TestRun_MultiDiscAlbumRestored(t *testing.T) {
	group := groupOf("Best Album", 10, 8)
	release := releaseOf("id-1", "ベスト・アルバム", 10, 8)

	rewriter := &fakeRewriter{}
	runner := testRunner(
		&fakeScanner{result: &scan.Result{Groups: []*model.AlbumGroup{group}}},
		&fakeResolver{resolution: &match.Resolution{Kind: match.Resolved, Release: release}},
		&fakePrompter{},
		rewriter,
	)

	summary, err := runner.Run(context.Background(), "/music")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.AlbumsRestored != 1 || summary.FilesWritten != 18 {
		t.Errorf("got %d albums / %d files, want 1 / 18", summary.AlbumsRestored, summary.FilesWritten)
	}
	if len(summary.FailedGroups) != 0 {
		t.Errorf("unexpected group failures: %v", summary.FailedGroups)
	}
	if len(rewriter.applied) != 18 {
		t.Errorf("rewriter saw %d bindings, want 18", len(rewriter.applied))
	}
}

func TestRun_CountMismatchSkipsGroupUntouched(t *testing.T) {
	group := groupOf("Best Album", 12)

	// The only candidate has 11 tracks; the user gives up at the prompt.
	rewriter := &fakeRewriter{}
	runner := testRunner(
		&fakeScanner{result: &scan.Result{Groups: []*model.AlbumGroup{group}}},
		&fakeResolver{
			resolution: &match.Resolution{
				Kind:       match.Ambiguous,
				Candidates: []model.Candidate{{ID: "id-1", Title: "Best Album", TrackCount: 11}},
			},
			releases: map[string]*model.Release{"id-1": releaseOf("id-1", "Best Album", 11)},
		},
		&fakePrompter{script: []prompt.Choice{
			{Kind: prompt.ChoiceRelease, ReleaseID: "id-1"}, // fails validation, 12 vs 11
			{Kind: prompt.ChoiceAbort},
		}},
		rewriter,
	)

	var warnings []string
	runner.onProgress = func(e ProgressEvent) {
		if e.Level == LevelWarning {
			warnings = append(warnings, e.Message)
		}
	}

	summary, err := runner.Run(context.Background(), "/music")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(rewriter.applied) != 0 {
		t.Errorf("rewriter called for a mismatched group")
	}
	if len(summary.FailedGroups) != 1 || !errors.Is(summary.FailedGroups[0].Err, model.ErrAborted) {
		t.Fatalf("failed groups = %v, want one aborted", summary.FailedGroups)
	}

	found := false
	for _, w := range warnings {
		if w == `track count mismatch for "Best Album": 12 local files vs 11 release tracks` {
			found = true
		}
	}
	if !found {
		t.Errorf("mismatch diagnostic not reported; warnings: %v", warnings)
	}
}

func TestRun_ReleaseIDShortCircuitsCandidateList(t *testing.T) {
	group := groupOf("Best Album", 3)
	release := releaseOf("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", "ベスト", 3)

	rewriter := &fakeRewriter{}
	prompter := &fakePrompter{script: []prompt.Choice{
		{Kind: prompt.ChoiceRelease, ReleaseID: release.ID},
	}}
	runner := testRunner(
		&fakeScanner{result: &scan.Result{Groups: []*model.AlbumGroup{group}}},
		&fakeResolver{
			resolution: &match.Resolution{
				Kind: match.Ambiguous,
				Candidates: []model.Candidate{
					{ID: "id-a", TrackCount: 3},
					{ID: "id-b", TrackCount: 3},
					{ID: "id-c", TrackCount: 3},
				},
			},
			releases: map[string]*model.Release{release.ID: release},
		},
		prompter,
		rewriter,
	)

	summary, err := runner.Run(context.Background(), "/music")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if prompter.asked != 1 {
		t.Errorf("prompted %d times, want 1", prompter.asked)
	}
	if summary.AlbumsRestored != 1 || summary.FilesWritten != 3 {
		t.Errorf("got %d albums / %d files, want 1 / 3", summary.AlbumsRestored, summary.FilesWritten)
	}
}

func TestRun_WriteFailureDoesNotBlockSiblings(t *testing.T) {
	group := groupOf("Best Album", 5)
	release := releaseOf("id-1", "ベスト", 5)

	rewriter := &fakeRewriter{result: &rewrite.Result{
		Written: []string{"a", "b", "c", "d"},
		Failed:  []*model.WriteError{{Path: "e", Err: errors.New("unsupported audio format")}},
	}}
	runner := testRunner(
		&fakeScanner{result: &scan.Result{Groups: []*model.AlbumGroup{group}}},
		&fakeResolver{resolution: &match.Resolution{Kind: match.Resolved, Release: release}},
		&fakePrompter{},
		rewriter,
	)

	summary, err := runner.Run(context.Background(), "/music")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.FilesWritten != 4 || len(summary.FailedFiles) != 1 {
		t.Errorf("got %d written / %d failed, want 4 / 1", summary.FilesWritten, len(summary.FailedFiles))
	}
	if summary.AlbumsRestored != 1 {
		t.Errorf("album with partial failure still counts as restored")
	}
}

func TestRun_PerDiscMismatchFailsGroup(t *testing.T) {
	// Totals agree but the disc split differs; alignment must refuse.
	group := groupOf("Best Album", 3, 2)
	release := releaseOf("id-1", "ベスト", 2, 3)

	rewriter := &fakeRewriter{}
	runner := testRunner(
		&fakeScanner{result: &scan.Result{Groups: []*model.AlbumGroup{group}}},
		&fakeResolver{resolution: &match.Resolution{Kind: match.Resolved, Release: release}},
		&fakePrompter{},
		rewriter,
	)

	summary, err := runner.Run(context.Background(), "/music")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(rewriter.applied) != 0 {
		t.Errorf("rewriter called despite per-disc mismatch")
	}
	var mismatch *model.CountMismatchError
	if len(summary.FailedGroups) != 1 || !errors.As(summary.FailedGroups[0].Err, &mismatch) {
		t.Fatalf("failed groups = %v, want one CountMismatchError", summary.FailedGroups)
	}
	if mismatch.Disc != 1 {
		t.Errorf("mismatch disc = %d, want 1", mismatch.Disc)
	}
}

func TestRun_NotFoundThenManualSearchResolves(t *testing.T) {
	group := groupOf("Besuto Arubamu", 4)
	release := releaseOf("id-1", "ベスト・アルバム", 4)

	rewriter := &fakeRewriter{}
	runner := testRunner(
		&fakeScanner{result: &scan.Result{Groups: []*model.AlbumGroup{group}}},
		&fakeResolver{
			resolution: &match.Resolution{Kind: match.NotFound},
			searches:   []*match.Resolution{{Kind: match.Resolved, Release: release}},
		},
		&fakePrompter{script: []prompt.Choice{
			{Kind: prompt.ChoiceSearch, Query: "ベスト・アルバム"},
		}},
		rewriter,
	)

	summary, err := runner.Run(context.Background(), "/music")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.AlbumsRestored != 1 {
		t.Errorf("albums restored = %d, want 1", summary.AlbumsRestored)
	}
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	group := groupOf("Best Album", 2)
	release := releaseOf("id-1", "ベスト", 2)

	rewriter := &fakeRewriter{}
	runner := testRunner(
		&fakeScanner{result: &scan.Result{Groups: []*model.AlbumGroup{group}}},
		&fakeResolver{resolution: &match.Resolution{Kind: match.Resolved, Release: release}},
		&fakePrompter{},
		rewriter,
	)
	runner.DryRun = true

	summary, err := runner.Run(context.Background(), "/music")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rewriter.applied) != 0 || summary.FilesWritten != 0 {
		t.Errorf("dry run wrote files")
	}
}
