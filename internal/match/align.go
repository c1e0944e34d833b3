package match

import "github.com/mikann/tagrestore/internal/model"

// Align binds each local track to the release track at the same position
// on the same disc. Position is the sole join key; the per-disc orderings
// established during the scan are taken as-is.
//
// Per-disc counts are re-verified first: a matching grand total can still
// hide a per-disc disagreement on multi-disc releases, and a positional
// join over unequal lists would mislabel every track after the gap. Any
// disagreement returns a CountMismatchError and no bindings.
func Align(group *model.AlbumGroup, release *model.Release) ([]model.Binding, error) {
	for _, n := range group.DiscNumbers() {
		if local, remote := len(group.Discs[n]), len(release.Disc(n)); local != remote {
			return nil, &model.CountMismatchError{
				Album:  group.Name,
				Disc:   n,
				Local:  local,
				Remote: remote,
			}
		}
	}

	bindings := make([]model.Binding, 0, group.TotalTracks())
	for _, n := range group.DiscNumbers() {
		remote := release.Disc(n)
		for i, local := range group.Discs[n] {
			bindings = append(bindings, model.Binding{Local: local, Remote: remote[i]})
		}
	}
	return bindings, nil
}
