package tags

import (
	"fmt"
	"strings"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

// managedFields are the vorbis comment keys this writer owns. Everything
// else in an existing comment block is carried over untouched.
var managedFields = map[string]bool{
	flacvorbis.FIELD_TITLE:       true,
	flacvorbis.FIELD_ARTIST:      true,
	flacvorbis.FIELD_ALBUM:       true,
	flacvorbis.FIELD_TRACKNUMBER: true,
	flacvorbis.FIELD_DATE:        true,
	"DISCNUMBER":                 true,
}

// writeFLAC rebuilds the vorbis comment block with the canonical values
// and saves the file in place.
func (w *Writer) writeFLAC(path string, v Values, artwork []byte) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse flac: %w", err)
	}

	var existing *flacvorbis.MetaDataBlockVorbisComment
	for _, block := range f.Meta {
		if block.Type == flac.VorbisComment {
			existing, err = flacvorbis.ParseFromMetaDataBlock(*block)
			if err != nil {
				return fmt.Errorf("parse vorbis comment: %w", err)
			}
			break
		}
	}

	cmt := buildVorbisComment(existing, v, w.config)

	// Drop the old comment block, and the old pictures when new art
	// replaces them.
	var meta []*flac.MetaDataBlock
	for _, block := range f.Meta {
		if block.Type == flac.VorbisComment {
			continue
		}
		if block.Type == flac.Picture && artwork != nil {
			continue
		}
		meta = append(meta, block)
	}

	cmtBlock := cmt.Marshal()
	meta = append(meta, &cmtBlock)

	if artwork != nil {
		pic, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "Cover", artwork, "image/jpeg")
		if err != nil {
			return fmt.Errorf("build picture block: %w", err)
		}
		picBlock := pic.Marshal()
		meta = append(meta, &picBlock)
	}

	f.Meta = meta
	return f.Save(path)
}

// buildVorbisComment merges the canonical values over an existing comment
// block, preserving any fields the writer does not manage.
func buildVorbisComment(existing *flacvorbis.MetaDataBlockVorbisComment, v Values, cfg Config) *flacvorbis.MetaDataBlockVorbisComment {
	cmt := flacvorbis.New()

	if existing != nil {
		cmt.Vendor = existing.Vendor
		for _, comment := range existing.Comments {
			key, _, found := strings.Cut(comment, "=")
			if found && managedFields[strings.ToUpper(key)] {
				continue
			}
			cmt.Comments = append(cmt.Comments, comment)
		}
	}

	cmt.Add(flacvorbis.FIELD_TITLE, v.Title)
	cmt.Add(flacvorbis.FIELD_ARTIST, v.Artist)
	cmt.Add(flacvorbis.FIELD_ALBUM, v.Album)

	if cfg.WriteTrackNumbers {
		if v.TrackNumber > 0 {
			cmt.Add(flacvorbis.FIELD_TRACKNUMBER, fmt.Sprintf("%d", v.TrackNumber))
		}
		if v.DiscNumber > 0 {
			cmt.Add("DISCNUMBER", fmt.Sprintf("%d", v.DiscNumber))
		}
	}
	if cfg.WriteReleaseDate && v.Date != "" {
		cmt.Add(flacvorbis.FIELD_DATE, v.Date)
	}

	return cmt
}
