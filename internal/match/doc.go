// Package match resolves a local album group to exactly one MusicBrainz
// release and binds each local file to a canonical track by position.
//
// Resolution is a two-stage affair: an automatic search path that accepts
// an unambiguous candidate on its own, and a tagged Ambiguous/NotFound
// result that hands the decision back to the caller for interactive
// disambiguation. Alignment afterwards is purely positional; transliterated
// titles are assumed unreliable, so no fuzzy title matching is performed.
package match
