package match

import (
	"errors"
	"testing"

	"github.com/mikann/tagrestore/internal/model"
)

func TestAlign_BindsByPositionPerDisc(t *testing.T) {
	group := model.NewAlbumGroup("Best Album")
	for i := 1; i <= 3; i++ {
		group.Add(&model.LocalTrack{Path: "d1", TrackNumber: i, DiscNumber: 1})
	}
	for i := 1; i <= 2; i++ {
		group.Add(&model.LocalTrack{Path: "d2", TrackNumber: i, DiscNumber: 2})
	}

	release := &model.Release{
		ID:    "id",
		Title: "ベスト・アルバム",
		Media: []model.Medium{
			{Position: 1, Tracks: []model.ReleaseTrack{
				{Title: "一", Disc: 1, Position: 1},
				{Title: "二", Disc: 1, Position: 2},
				{Title: "三", Disc: 1, Position: 3},
			}},
			{Position: 2, Tracks: []model.ReleaseTrack{
				{Title: "四", Disc: 2, Position: 1},
				{Title: "五", Disc: 2, Position: 2},
			}},
		},
	}

	bindings, err := Align(group, release)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if len(bindings) != 5 {
		t.Fatalf("got %d bindings, want 5", len(bindings))
	}

	// Every local track is bound exactly once, to the same disc and
	// position it holds locally.
	seen := make(map[*model.LocalTrack]bool)
	for _, b := range bindings {
		if seen[b.Local] {
			t.Errorf("track %s bound twice", b.Local.Path)
		}
		seen[b.Local] = true
		if b.Local.DiscNumber != b.Remote.Disc {
			t.Errorf("disc mismatch: local %d, remote %d", b.Local.DiscNumber, b.Remote.Disc)
		}
		if b.Local.TrackNumber != b.Remote.Position {
			t.Errorf("position mismatch: local %d, remote %d", b.Local.TrackNumber, b.Remote.Position)
		}
	}
}

func TestAlign_PerDiscMismatchFailsWhole(t *testing.T) {
	// Totals agree (5 each) but the per-disc split differs.
	group := groupOf("Best Album", "", 3, 2)
	release := releaseOf("id", "Best Album", 2, 3)

	bindings, err := Align(group, release)
	if bindings != nil {
		t.Fatalf("got %d bindings, want none", len(bindings))
	}
	var mismatch *model.CountMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want CountMismatchError", err)
	}
	if mismatch.Disc != 1 || mismatch.Local != 3 || mismatch.Remote != 2 {
		t.Errorf("got disc=%d local=%d remote=%d, want disc=1 local=3 remote=2",
			mismatch.Disc, mismatch.Local, mismatch.Remote)
	}
}
