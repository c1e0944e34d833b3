// Package tags reads and writes audio file metadata.
//
// # Reading
//
// Reader extracts the fields the scanner needs (album, title, artist,
// track number, disc number) from MP3 and FLAC files in one call:
//
//	reader := tags.NewReader()
//	meta, err := reader.ReadMetadata("/music/album/01.flac")
//
// # Writing
//
// Writer applies canonical values to a file, dispatching on the file
// extension: ID3v2 frames for MP3, vorbis comments for FLAC. Vorbis
// fields the writer does not manage are preserved.
//
//	writer := tags.NewWriter(tags.Config{WriteTrackNumbers: true})
//	err := writer.Write(path, tags.Values{
//	    Title:  "本能",
//	    Artist: "椎名林檎",
//	    Album:  "ベストアルバム",
//	}, artworkJPEG)
//
// Writing to any other extension returns ErrUnsupportedFormat.
package tags
