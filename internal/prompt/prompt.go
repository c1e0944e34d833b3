// Package prompt implements interactive album disambiguation on the
// controlling terminal.
//
// The prompter is consulted only when automatic resolution fails. It
// presents the remaining candidates and accepts either a selection, a
// free-text re-query, or a literal MusicBrainz release ID, looping in the
// pipeline until the album resolves or the user gives up. The run is
// fully suspended while a prompt is open.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/mikann/tagrestore/internal/model"
	"github.com/mikann/tagrestore/internal/musicbrainz"
)

// ChoiceKind discriminates what the user decided.
type ChoiceKind int

const (
	// ChoiceRelease selects a specific release by ID.
	ChoiceRelease ChoiceKind = iota

	// ChoiceSearch requests a new free-text search.
	ChoiceSearch

	// ChoiceAbort skips the album group untouched.
	ChoiceAbort
)

// Choice is the outcome of one disambiguation prompt. ReleaseID is set
// for ChoiceRelease, Query for ChoiceSearch.
type Choice struct {
	Kind      ChoiceKind
	ReleaseID string
	Query     string
}

const (
	optionManual = "Enter an album name or release ID"
	optionSkip   = "Skip this album"
)

// Terminal prompts on stdin/stdout using arrow-key selection.
type Terminal struct{}

// NewTerminal creates a terminal-backed prompter.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Disambiguate asks the user to resolve an album group. candidates may be
// empty, in which case the prompt goes straight to manual input.
//
// Ctrl+C aborts the album, not the program.
func (t *Terminal) Disambiguate(group *model.AlbumGroup, candidates []model.Candidate) (Choice, error) {
	if len(candidates) == 0 {
		return t.manualInput(group)
	}

	options := make([]string, 0, len(candidates)+2)
	for _, c := range candidates {
		options = append(options, CandidateLabel(c))
	}
	options = append(options, optionManual, optionSkip)

	selected := 0
	err := survey.AskOne(&survey.Select{
		Message:  fmt.Sprintf("%d matches for %q (%d local files). Pick a release:", len(candidates), group.Name, group.TotalTracks()),
		Options:  options,
		PageSize: 10,
	}, &selected)
	if err != nil {
		return abortOn(err)
	}

	switch options[selected] {
	case optionManual:
		return t.manualInput(group)
	case optionSkip:
		return Choice{Kind: ChoiceAbort}, nil
	default:
		return Choice{Kind: ChoiceRelease, ReleaseID: candidates[selected].ID}, nil
	}
}

// manualInput reads free text. A pasted release ID short-circuits to a
// direct lookup; anything else becomes a new search query.
func (t *Terminal) manualInput(group *model.AlbumGroup) (Choice, error) {
	var input string
	err := survey.AskOne(&survey.Input{
		Message: fmt.Sprintf("Album name or MusicBrainz release ID for %q (empty to skip):", group.Name),
	}, &input)
	if err != nil {
		return abortOn(err)
	}

	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return Choice{Kind: ChoiceAbort}, nil
	case musicbrainz.IsReleaseID(input):
		return Choice{Kind: ChoiceRelease, ReleaseID: strings.ToLower(input)}, nil
	default:
		return Choice{Kind: ChoiceSearch, Query: input}, nil
	}
}

// abortOn turns Ctrl+C into a skip; other terminal errors propagate.
func abortOn(err error) (Choice, error) {
	if errors.Is(err, terminal.InterruptErr) {
		return Choice{Kind: ChoiceAbort}, nil
	}
	return Choice{}, err
}

// CandidateLabel renders one candidate as a single selectable line. The
// TUI uses the same renderer so both surfaces describe a release
// identically.
func CandidateLabel(c model.Candidate) string {
	label := c.Title
	if c.Artist != "" {
		label += " by " + c.Artist
	}

	var details []string
	if c.Date != "" {
		details = append(details, c.Date)
	}
	if c.Country != "" {
		details = append(details, c.Country)
	}
	if c.Status != "" {
		details = append(details, c.Status)
	}
	details = append(details, fmt.Sprintf("%d tracks", c.TrackCount))

	return fmt.Sprintf("%s (%s)", label, strings.Join(details, ", "))
}
