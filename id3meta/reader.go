package id3meta

import (
	"fmt"

	"github.com/bogem/id3v2/v2"
)

// TrackInfo is the small subset of ID3v2 fields the progress sink displays.
type TrackInfo struct {
	Title  string
	Artist string
	Album  string
}

// Read opens path and extracts TrackInfo from its ID3v2 tag, if present.
// A missing or unparseable tag is reported as ErrNoTag rather than failing
// the whole encode: ID3 metadata is decoration, not structural input.
func Read(path string) (TrackInfo, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return TrackInfo{}, fmt.Errorf("%w: %s: %v", ErrNoTag, path, err)
	}
	defer tag.Close()

	info := TrackInfo{
		Title:  tag.Title(),
		Artist: tag.Artist(),
		Album:  tag.Album(),
	}
	if info.Title == "" && info.Artist == "" && info.Album == "" {
		return TrackInfo{}, fmt.Errorf("%w: %s", ErrNoTag, path)
	}
	return info, nil
}
