package lossless

import (
	"fmt"

	"github.com/toniecodec/tonie/oggpage"
	"github.com/toniecodec/tonie/oggstream"
)

// Result is what Assemble produces.
type Result struct {
	Body     []byte
	Chapters []uint32
}

// Assemble reassembles a Body from an ordered list of chapter byte ranges
// (each one a standalone Ogg Opus stream, with or without its own
// OpusHead/OpusTags pages — anything before sequence 2 is ignored) without
// touching any Opus payload byte. If original is non-nil, its
// OpusHead/OpusTags pages are reused as the new Body's header prefix
// (re-targeted to audioID); otherwise the first chapter's header pages are
// used.
func Assemble(chapters [][]byte, original []byte, audioID uint32) (Result, error) {
	if len(chapters) == 0 {
		return Result{}, ErrNoChapters
	}

	headerSource := original
	if headerSource == nil {
		headerSource = chapters[0]
	}
	body, err := buildHeaderPrefix(headerSource, audioID)
	if err != nil {
		return Result{}, err
	}

	var (
		markers        []uint32
		nextSeq        = uint32(2)
		cumulativeGran uint64
		lastPageOff    = -1
		sawAnyDataPage bool
	)

	for i, raw := range chapters {
		dataPages := dataPagesOf(raw)
		if len(dataPages) == 0 {
			return Result{}, fmt.Errorf("%w: chapter %d", ErrNoDataPages, i)
		}

		firstGranule, lastGranule, ok := granuleRange(dataPages)
		if !ok {
			return Result{}, fmt.Errorf("%w: chapter %d has no real granule", ErrNoDataPages, i)
		}

		if i == 0 {
			markers = append(markers, 0)
		} else {
			markers = append(markers, nextSeq)
		}

		for _, p := range dataPages {
			p.HeaderType &^= oggpage.FlagBOS | oggpage.FlagEOS
			p.SerialNumber = audioID
			p.PageSequence = nextSeq
			nextSeq++

			if p.GranulePos != oggpage.NoGranule {
				p.GranulePos = (p.GranulePos - firstGranule) + cumulativeGran
			}

			pageStart := len(body)
			boundary := nextBlockBoundary(pageStart + p.EncodedSize())
			if err := p.PadToEndAt(pageStart, boundary); err != nil {
				return Result{}, fmt.Errorf("lossless: pad page: %w", err)
			}
			body = append(body, p.Encode()...)
			lastPageOff = pageStart
			sawAnyDataPage = true
		}

		cumulativeGran += lastGranule - firstGranule
	}

	if sawAnyDataPage {
		if err := setEOS(body, lastPageOff); err != nil {
			return Result{}, err
		}
	}

	return Result{Body: body, Chapters: markers}, nil
}

// buildHeaderPrefix re-emits the OpusHead/OpusTags pages found in src,
// re-targeted to audioID, zero-padding the raw output up to exactly the
// fixed 0x200-byte header region (filler bytes, not page segments — the
// two-state page iterator resynchronizes past them when later reading the
// body, same as it does past any other corruption).
func buildHeaderPrefix(src []byte, audioID uint32) ([]byte, error) {
	headers := oggstream.Headers(src)
	if len(headers) < 2 {
		return nil, fmt.Errorf("%w: fewer than 2 header pages found", oggstream.ErrMissingHeaders)
	}

	const headerRegion = 0x200
	var out []byte
	for i, h := range headers[:2] {
		p := h.Page
		p.SerialNumber = audioID
		p.PageSequence = uint32(i)
		out = append(out, p.Encode()...)
	}

	if len(out) > headerRegion {
		return nil, ErrHeadersTooLarge
	}
	if len(out) < headerRegion {
		out = append(out, make([]byte, headerRegion-len(out))...)
	}
	return out, nil
}

func dataPagesOf(raw []byte) []*oggpage.Page {
	var pages []*oggpage.Page
	for _, pa := range oggstream.Pages(raw) {
		if pa.Page.PageSequence >= 2 {
			pages = append(pages, pa.Page)
		}
	}
	return pages
}

func granuleRange(pages []*oggpage.Page) (first, last uint64, ok bool) {
	first = oggpage.NoGranule
	for _, p := range pages {
		if p.GranulePos == oggpage.NoGranule {
			continue
		}
		if !ok || p.GranulePos < first {
			first = p.GranulePos
		}
		if p.GranulePos > last {
			last = p.GranulePos
		}
		ok = true
	}
	return first, last, ok
}

func setEOS(body []byte, offset int) error {
	page, consumed, err := oggpage.Parse(body[offset:])
	if err != nil && err != oggpage.ErrBadCRC {
		return fmt.Errorf("lossless: locate final page: %w", err)
	}
	page.HeaderType |= oggpage.FlagEOS
	reencoded := page.Encode()
	if len(reencoded) != consumed {
		return fmt.Errorf("lossless: final page re-encode size mismatch")
	}
	copy(body[offset:], reencoded)
	return nil
}

func nextBlockBoundary(pos int) int {
	return (pos + oggpage.BlockSize - 1) / oggpage.BlockSize * oggpage.BlockSize
}
