package oggstream

import (
	"github.com/toniecodec/tonie/oggpage"
)

// PageAt pairs a parsed page with the byte offset (relative to the scanned
// buffer) at which it begins.
type PageAt struct {
	Offset int
	Page   *oggpage.Page
	// CRCValid is false when the page parsed structurally but its stored
	// checksum did not match — a single corrupted byte elsewhere in the
	// body does not stop iteration, only flags the page.
	CRCValid bool
}

// Iterator walks the Ogg pages in a buffer. It is a two-state machine: each
// step either yields a page or advances by one byte to resynchronize on the
// next "OggS" signature. Callers never see exceptions for the normal
// mis-sync case — Next simply returns ok=false once it runs out of buffer.
type Iterator struct {
	buf []byte
	pos int
}

// NewIterator returns an Iterator over buf.
func NewIterator(buf []byte) *Iterator {
	return &Iterator{buf: buf}
}

// Next returns the next page, or ok=false when the buffer is exhausted.
func (it *Iterator) Next() (PageAt, bool) {
	for it.pos < len(it.buf) {
		p, consumed, err := oggpage.Parse(it.buf[it.pos:])
		if err == nil || err == oggpage.ErrBadCRC {
			pa := PageAt{Offset: it.pos, Page: p, CRCValid: err == nil}
			it.pos += consumed
			return pa, true
		}
		it.pos++
	}
	return PageAt{}, false
}

// Pages scans the whole buffer and returns every page found, in order. It is
// a convenience wrapper around Iterator for callers that don't need to
// interleave scanning with other work.
func Pages(buf []byte) []PageAt {
	it := NewIterator(buf)
	var out []PageAt
	for {
		pa, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, pa)
	}
}

// Headers returns the prefix of pages whose first segment's first 8 bytes
// equal "OpusHead" or "OpusTags". For Tonie bodies this is always exactly
// two pages (sequence 0 and 1).
func Headers(buf []byte) []PageAt {
	var out []PageAt
	for _, pa := range Pages(buf) {
		packets := pa.Page.Packets()
		if len(packets) == 0 || len(packets[0]) < 8 {
			break
		}
		magic := string(packets[0][:8])
		if magic != opusHeadMagic && magic != opusTagsMagic {
			break
		}
		out = append(out, pa)
	}
	return out
}

// AddTags appends comment strings to the OpusTags page's comment vector and
// replaces that page's Segments and Payload in place, renumbering nothing.
// It does not serialize the page: it returns the mutated *oggpage.Page, and
// the caller runs oggpage.Page.Encode on it for fresh bytes and CRC.
//
// pages must be the result of Headers(buf): exactly [OpusHead, OpusTags,
// ...continuation pages].
func AddTags(pages []PageAt, comments ...string) (*oggpage.Page, error) {
	if len(pages) < 2 {
		return nil, ErrMissingHeaders
	}

	var tagsData []byte
	tagsPages := pages[1:]
	for _, pa := range tagsPages {
		tagsData = append(tagsData, pa.Page.Payload...)
	}

	tags, err := ParseOpusTags(tagsData)
	if err != nil {
		return nil, err
	}
	tags.Comments = append(tags.Comments, comments...)

	encoded := tags.Encode()
	out := tagsPages[0].Page
	out.Segments = oggpage.BuildSegmentTable(len(encoded))
	out.Payload = encoded
	return out, nil
}

// ChapterOffsets scans pages in order and records the starting byte offset
// of the page whose sequence number equals each requested chapter marker, in
// the order the markers were given (duplicates preserved). It returns
// ErrChapterNotFound if any marker has no matching page.
func ChapterOffsets(buf []byte, chapterSeqs []uint32) ([]int, error) {
	bySeq := make(map[uint32]int)
	for _, pa := range Pages(buf) {
		if _, exists := bySeq[pa.Page.PageSequence]; !exists {
			bySeq[pa.Page.PageSequence] = pa.Offset
		}
	}

	offsets := make([]int, len(chapterSeqs))
	for i, seq := range chapterSeqs {
		off, ok := bySeq[seq]
		if !ok {
			return nil, ErrChapterNotFound
		}
		offsets[i] = off
	}
	return offsets, nil
}

// ParsePositions returns one granule position per chapter marker (the
// granule of the page whose sequence equals that marker), preceded by an
// initial 0 and followed by the end-of-stream granule (the highest granule
// seen in the buffer). Duplicate markers produce duplicate entries;
// deduplication is a UI-layer concern, not this package's.
func ParsePositions(buf []byte, chapterSeqs []uint32) ([]uint64, error) {
	bySeq := make(map[uint32]uint64)
	var highest uint64
	for _, pa := range Pages(buf) {
		if pa.Page.GranulePos != oggpage.NoGranule {
			bySeq[pa.Page.PageSequence] = pa.Page.GranulePos
			if pa.Page.GranulePos > highest {
				highest = pa.Page.GranulePos
			}
		}
	}

	positions := make([]uint64, 0, len(chapterSeqs)+2)
	positions = append(positions, 0)
	for _, seq := range chapterSeqs {
		g, ok := bySeq[seq]
		if !ok {
			return nil, ErrChapterNotFound
		}
		positions = append(positions, g)
	}
	positions = append(positions, highest)
	return positions, nil
}
