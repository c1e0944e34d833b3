// Package scan walks an input directory tree and groups audio files into
// album groups.
//
// The scanner reads each file's tags through a MetadataReader, strips
// disc suffixes like "(Disc 1)" or "[CD 2]" from the album name to form
// the grouping key, infers disc numbers, and establishes a stable track
// order per disc.
//
//	scanner := scan.NewScanner(tags.NewReader())
//	result, err := scanner.Scan("/music/incoming")
//	for _, group := range result.Groups {
//	    fmt.Printf("%s: %d files on %d disc(s)\n",
//	        group.Name, group.TotalTracks(), len(group.Discs))
//	}
//
// Files whose tags cannot be read are collected in Result.Skipped and do
// not abort the scan. Non-audio files are ignored and never touched.
//
// Disc-number inference and album-name normalization are pure functions
// (DiscFromFolder, NormalizeAlbumName) so the policies are testable
// without filesystem access.
package scan
