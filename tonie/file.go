package tonie

import (
	"crypto/sha1"
	"io"

	"github.com/toniecodec/tonie/oggstream"
	"github.com/toniecodec/tonie/statcheck"
	"github.com/toniecodec/tonie/tonieheader"
)

// File is a parsed or freshly built Tonie file: a 4096-byte Header plus an
// Ogg Opus Body.
type File struct {
	Header *tonieheader.Header
	Body   []byte

	// HashCorrect is set by Read and reports whether Header.Hash actually
	// matches sha1(Body). Files built in this process always start true;
	// Repair restores it after a caller mutates Body directly.
	HashCorrect bool

	// Stats is the statistics Check accumulated while reading this file.
	// Zero value for files built by BuildFromSources/BuildMixed, which
	// never need to re-derive their own statistics.
	Stats statcheck.Result
}

// Read parses a complete Tonie file image: the fixed 4096-byte header,
// then the Body it declares. Structural violations (bad block alignment,
// granule regression, missing header pages, missing EOS, malformed
// chapters) abort with an error. A whole-body hash mismatch does not abort;
// it is reported via the returned File's HashCorrect field.
func Read(data []byte) (*File, error) {
	if len(data) < tonieheader.Size {
		return nil, ErrTruncated
	}
	header, err := tonieheader.Parse(data[:tonieheader.Size])
	if err != nil {
		return nil, err
	}
	if header.AudioLength < 0 {
		return nil, ErrTruncated
	}
	bodyEnd := tonieheader.Size + int(header.AudioLength)
	if bodyEnd > len(data) {
		return nil, ErrTruncated
	}
	body := data[tonieheader.Size:bodyEnd]

	stats, err := statcheck.Check(body, header)
	if err != nil {
		return nil, err
	}

	return &File{Header: header, Body: body, HashCorrect: stats.HashCorrect, Stats: stats}, nil
}

// Bytes serializes the file back into a complete image: the 4096-byte
// header followed by Body.
func (f *File) Bytes() ([]byte, error) {
	h, err := tonieheader.Serialize(f.Header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(h)+len(f.Body))
	out = append(out, h...)
	out = append(out, f.Body...)
	return out, nil
}

// Repair recomputes Header.Hash from the current Body and marks
// HashCorrect true. Use after editing Body directly (e.g. via a lossless
// reassembly) so the stored hash matches again.
func (f *File) Repair() {
	f.Header.Hash = sha1.Sum(f.Body)
	f.HashCorrect = true
}

// ExtractRawChapters splits Body into one byte range per distinct chapter
// marker in Header.AudioChapters (consecutive duplicate markers, an
// artifact of DuplicateFirstChapter, collapse to a single range —
// deduplication is this layer's job, same as oggstream.ParsePositions
// documents for its own duplicate markers).
func (f *File) ExtractRawChapters() ([][]byte, error) {
	markers := dedupAdjacent(f.Header.AudioChapters)
	offsets, err := oggstream.ChapterOffsets(f.Body, markers)
	if err != nil {
		return nil, err
	}

	chapters := make([][]byte, len(offsets))
	for i, off := range offsets {
		end := len(f.Body)
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		chapters[i] = f.Body[off:end]
	}
	return chapters, nil
}

// ExtractChapterToOgg writes chapter i as a standalone, independently
// playable Ogg Opus stream: this file's own OpusHead/OpusTags pages,
// followed by the chapter's pages with granules rebased to start at 0 and
// sequence numbers renumbered from 2, with EOS set on the last page.
func (f *File) ExtractChapterToOgg(i int, w io.Writer) error {
	chapters, err := f.ExtractRawChapters()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(chapters) {
		return ErrChapterIndexOutOfRange
	}

	res, err := assembleSingle(chapters[i], f.Body, f.Header.AudioID)
	if err != nil {
		return err
	}
	_, err = w.Write(res)
	return err
}

// DumpAllAsSingleOgg writes Body as-is: it is already a complete, valid
// multi-chapter Ogg Opus stream.
func (f *File) DumpAllAsSingleOgg(w io.Writer) error {
	_, err := w.Write(f.Body)
	return err
}

func dedupAdjacent(markers []uint32) []uint32 {
	if len(markers) == 0 {
		return nil
	}
	out := []uint32{markers[0]}
	for _, m := range markers[1:] {
		if m != out[len(out)-1] {
			out = append(out, m)
		}
	}
	return out
}
