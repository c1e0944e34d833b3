package match

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/mikann/tagrestore/internal/model"
)

// Finder is the release-lookup surface the matcher needs. Satisfied by
// musicbrainz.Client; tests substitute a fake.
type Finder interface {
	SearchReleases(ctx context.Context, album, artist string) ([]model.Candidate, error)
	LookupRelease(ctx context.Context, id string) (*model.Release, error)
}

// ResolutionKind discriminates the outcome of an automatic resolution
// attempt.
type ResolutionKind int

const (
	// Resolved means exactly one release was accepted automatically.
	Resolved ResolutionKind = iota

	// Ambiguous means several candidates remain and the caller must ask
	// the user to pick, re-query, or supply a release ID.
	Ambiguous

	// NotFound means the search returned no candidates at all.
	NotFound
)

// Resolution is the tagged outcome of a resolution attempt. Release is set
// when Kind is Resolved; Candidates when Kind is Ambiguous, best match
// first.
type Resolution struct {
	Kind       ResolutionKind
	Release    *model.Release
	Candidates []model.Candidate
}

// Matcher resolves album groups against a release database.
type Matcher struct {
	finder Finder
}

// NewMatcher creates a Matcher querying releases through the given finder.
func NewMatcher(finder Finder) *Matcher {
	return &Matcher{finder: finder}
}

// Resolve attempts the automatic resolution path for a group: search by
// normalized album name plus artist hint, and accept a candidate on its
// own only when it is unambiguous and its track count matches the group.
//
// A candidate that fails validation after lookup demotes the attempt to
// Ambiguous rather than failing the group; the user may still know better.
func (m *Matcher) Resolve(ctx context.Context, group *model.AlbumGroup) (*Resolution, error) {
	return m.resolve(ctx, group, group.Name, group.ArtistHint())
}

// Search runs the manual free-text path: re-query with user-supplied text
// and the same acceptance rules as the automatic path.
func (m *Matcher) Search(ctx context.Context, group *model.AlbumGroup, query string) (*Resolution, error) {
	return m.resolve(ctx, group, query, "")
}

// Lookup fetches a release directly by its ID, bypassing search. Count
// validation is the caller's responsibility, as with any resolution.
func (m *Matcher) Lookup(ctx context.Context, id string) (*model.Release, error) {
	return m.finder.LookupRelease(ctx, id)
}

func (m *Matcher) resolve(ctx context.Context, group *model.AlbumGroup, query, artist string) (*Resolution, error) {
	candidates, err := m.finder.SearchReleases(ctx, query, artist)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return &Resolution{Kind: NotFound}, nil
	}

	if pick, ok := autoPick(group, query, artist, candidates); ok {
		release, err := m.finder.LookupRelease(ctx, pick.ID)
		switch {
		case errors.Is(err, model.ErrNotFound):
			// Stale search result; fall through to the candidate list.
		case err != nil:
			return nil, err
		case Validate(group, release) == nil:
			return &Resolution{Kind: Resolved, Release: release}, nil
		}
	}

	rankCandidates(candidates, query)
	return &Resolution{Kind: Ambiguous, Candidates: candidates}, nil
}

// autoPick selects a candidate that can be accepted without asking: a
// unique search result, or an exact title and artist match among several,
// in both cases only when its track count equals the group's file count.
func autoPick(group *model.AlbumGroup, query, artist string, candidates []model.Candidate) (model.Candidate, bool) {
	if len(candidates) == 1 {
		if candidates[0].TrackCount == group.TotalTracks() {
			return candidates[0], true
		}
		return model.Candidate{}, false
	}

	if artist == "" {
		return model.Candidate{}, false
	}
	for _, c := range candidates {
		if strings.EqualFold(c.Title, query) &&
			strings.EqualFold(c.Artist, artist) &&
			c.TrackCount == group.TotalTracks() {
			return c, true
		}
	}
	return model.Candidate{}, false
}

// rankCandidates orders candidates by title similarity to the query,
// preferring a matching track count on ties. The sort is stable so the
// service's own relevance order decides among equals.
func rankCandidates(candidates []model.Candidate, query string) {
	type scored struct {
		candidate model.Candidate
		score     float64
	}
	ranked := make([]scored, len(candidates))
	for i, c := range candidates {
		ranked[i] = scored{candidate: c, score: similarity(c.Title, query)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	for i, r := range ranked {
		candidates[i] = r.candidate
	}
}

// Validate checks a resolved release against the group: total track counts
// must agree, and every local disc partition must exist on the release.
// Violations return a CountMismatchError; the group is then skipped whole.
func Validate(group *model.AlbumGroup, release *model.Release) error {
	if total := release.TotalTracks(); total != group.TotalTracks() {
		return &model.CountMismatchError{
			Album:  group.Name,
			Local:  group.TotalTracks(),
			Remote: total,
		}
	}
	for _, n := range group.DiscNumbers() {
		if release.Disc(n) == nil {
			return &model.CountMismatchError{
				Album:  group.Name,
				Disc:   n,
				Local:  len(group.Discs[n]),
				Remote: 0,
			}
		}
	}
	return nil
}
