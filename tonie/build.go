package tonie

import (
	"crypto/sha1"

	"github.com/toniecodec/tonie/audiosrc"
	"github.com/toniecodec/tonie/lossless"
	"github.com/toniecodec/tonie/progress"
	"github.com/toniecodec/tonie/tonieenc"
	"github.com/toniecodec/tonie/tonieheader"
)

// TrackSource is one entry of a BuildMixed playlist: either a path to a
// source audio file to encode fresh, or Raw bytes of an already-encoded
// Ogg Opus chapter (e.g. one extracted from another Tonie file via
// ExtractRawChapters or ExtractChapterToOgg) to splice in byte-for-byte.
type TrackSource struct {
	Path string
	Raw  []byte
}

// BuildFromSources encodes every source fresh and assembles a new File.
// It is a thin wrapper over tonieenc.Encode.
func BuildFromSources(sources []audiosrc.Source, opts tonieenc.Options, open audiosrc.Opener, newEncoder tonieenc.EncoderFactory, sink *progress.Sink) (*File, error) {
	res, err := tonieenc.Encode(sources, opts, open, newEncoder, sink)
	if err != nil {
		return nil, err
	}
	return newFile(res.Body, res.Chapters, res.AudioID), nil
}

// BuildMixed assembles a File from a playlist mixing fresh source audio
// with already-encoded raw chapters, without touching a single Opus
// payload byte of the Raw entries. Each Path entry is encoded in isolation
// (as its own single-track Body, sharing audioID and opts) before being
// handed to the lossless assembler alongside the Raw entries, in playlist
// order.
func BuildMixed(tracks []TrackSource, original []byte, audioID uint32, opts tonieenc.Options, open audiosrc.Opener, newEncoder tonieenc.EncoderFactory, sink *progress.Sink) (*File, error) {
	rawChapters := make([][]byte, 0, len(tracks))
	for _, tr := range tracks {
		if tr.Path == "" {
			rawChapters = append(rawChapters, tr.Raw)
			continue
		}

		singleOpts := opts
		singleOpts.AudioID = audioID
		singleOpts.DuplicateFirstChapter = false

		res, err := tonieenc.Encode([]audiosrc.Source{{Path: tr.Path}}, singleOpts, open, newEncoder, sink)
		if err != nil {
			return nil, err
		}
		rawChapters = append(rawChapters, res.Body)
	}

	asm, err := lossless.Assemble(rawChapters, original, audioID)
	if err != nil {
		return nil, err
	}
	return newFile(asm.Body, asm.Chapters, audioID), nil
}

// assembleSingle reassembles one chapter's raw pages into a standalone
// stream, reusing headerSource (normally the whole file's Body, which
// always carries its own OpusHead/OpusTags regardless of which chapter is
// being extracted) for the header prefix.
func assembleSingle(chapter, headerSource []byte, audioID uint32) ([]byte, error) {
	res, err := lossless.Assemble([][]byte{chapter}, headerSource, audioID)
	if err != nil {
		return nil, err
	}
	return res.Body, nil
}

func newFile(body []byte, chapters []uint32, audioID uint32) *File {
	return &File{
		Header: &tonieheader.Header{
			Hash:          sha1.Sum(body),
			AudioLength:   int32(len(body)),
			AudioID:       audioID,
			AudioChapters: chapters,
			Usable:        true,
		},
		Body:        body,
		HashCorrect: true,
	}
}
