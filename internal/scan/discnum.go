package scan

import (
	"regexp"
	"strconv"
)

// discFolderPattern matches a disc marker inside a folder name: "Disc 1",
// "CD2", "disc_3", "Best Album Disc 2". A marker must start the name or
// follow a separator, so "abcd 2" does not count.
var discFolderPattern = regexp.MustCompile(`(?i)(?:^|[\s(\[._-])(?:disc|cd)[\s._-]*(\d+)`)

// DiscFromFolder infers a disc number from a folder name.
//
// Returns (0, false) when the name carries no recognizable disc marker;
// callers fall back to the default disc. The same name always yields the
// same result.
//
//	DiscFromFolder("Disc 2")   // 2, true
//	DiscFromFolder("CD1")      // 1, true
//	DiscFromFolder("Bonus")    // 0, false
func DiscFromFolder(name string) (int, bool) {
	m := discFolderPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
