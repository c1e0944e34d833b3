package scan

import (
	"regexp"
	"strconv"
	"strings"
)

// discSuffixPattern matches a trailing disc marker on an album name:
// "(Disc 1)", "[CD 2]", "- Disc 3", "Disc4". Case-insensitive, with the
// separator variants seen in the wild. The keyword must sit at the start
// or behind a separator or bracket, so a title word that merely ends in
// "cd" or "disc" is never treated as a marker.
var discSuffixPattern = regexp.MustCompile(`(?i)(?:^|[\s._~-]|[(\[])\s*(?:disc|cd)[\s._-]*(\d+)\s*[)\]]?\s*$`)

// NormalizeAlbumName strips trailing disc suffixes from an album name,
// returning the grouping key and the disc number the suffix carried.
//
// disc is 0 when the name carries no suffix. Normalization is idempotent:
// a normalized name has no suffix left to strip, so applying it again is
// the identity.
//
//	NormalizeAlbumName("Best Album (Disc 1)") // "Best Album", 1
//	NormalizeAlbumName("Best Album")          // "Best Album", 0
func NormalizeAlbumName(name string) (normalized string, disc int) {
	normalized = strings.TrimSpace(name)

	for {
		m := discSuffixPattern.FindStringSubmatch(normalized)
		if m == nil {
			return normalized, disc
		}

		stripped := strings.TrimSpace(strings.TrimSuffix(normalized, m[0]))
		if stripped == "" {
			// The whole name is a disc marker ("Disc 1"); keep it
			// rather than producing an empty grouping key.
			return normalized, disc
		}

		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 && disc == 0 {
			disc = n
		}
		normalized = stripped
	}
}
