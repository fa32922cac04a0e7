package statcheck

import (
	"crypto/sha1"

	"github.com/toniecodec/tonie/oggpage"
	"github.com/toniecodec/tonie/oggstream"
	"github.com/toniecodec/tonie/tonieheader"
)

// Result holds the statistics Check accumulates while walking a body, plus
// the outcome of the whole-body hash check.
type Result struct {
	// MinSegments and MaxSegments are the smallest and largest per-page
	// segment-table lengths seen.
	MinSegments int
	MaxSegments int

	// MinGranuleDelta and MaxGranuleDelta are the smallest and largest
	// granule-position increases between consecutive data pages (those after
	// the OpusHead/OpusTags pair) that both carry a real (non-sentinel)
	// granule.
	MinGranuleDelta uint64
	MaxGranuleDelta uint64

	// HighestGranule is the largest granule position seen in the body.
	HighestGranule uint64

	// HashCorrect reports whether sha1(body) matches header.Hash. A
	// mismatch is reported here rather than as an error: a single
	// corrupted byte in the body must not stop the rest of Check from
	// running, matching the tolerant-parse behavior in oggpage.Parse.
	HashCorrect bool
}

// Check walks body page by page against header and reports structural
// violations. It verifies block alignment (no page, measured from the offset
// at which it actually starts, crosses into the next 4 KiB block without
// ending exactly on that boundary; a page that ends inside its block is not
// rejected), granule monotonicity, the OpusHead/OpusTags header pair, the
// final EOS flag, and that audio_chapters is strictly increasing and
// resolves to real pages. A whole-body hash mismatch is reported via
// Result.HashCorrect rather than as an error.
func Check(body []byte, header *tonieheader.Header) (Result, error) {
	var res Result

	if header.AudioLength != int32(len(body)) {
		return res, ErrAudioLengthMismatch
	}

	sum := sha1.Sum(body)
	res.HashCorrect = sum == header.Hash

	pages := oggstream.Pages(body)
	if len(pages) < 2 {
		return res, ErrMissingHeaderPages
	}
	if !isMagicPage(pages[0], "OpusHead") || pages[0].Page.PageSequence != 0 {
		return res, ErrMissingHeaderPages
	}
	if !isMagicPage(pages[1], "OpusTags") || pages[1].Page.PageSequence != 1 {
		return res, ErrMissingHeaderPages
	}

	res.MinSegments = len(pages[0].Page.Segments)
	res.MaxSegments = res.MinSegments

	lastOffset := 0
	haveLastGranule := false
	lastGranuleIsData := false
	var lastGranule uint64
	haveDelta := false

	for i, pa := range pages {
		n := len(pa.Page.Segments)
		if n < res.MinSegments {
			res.MinSegments = n
		}
		if n > res.MaxSegments {
			res.MaxSegments = n
		}

		currentOffset := pa.Offset + pa.Page.EncodedSize()
		lastMod := lastOffset % oggpage.BlockSize
		currentMod := currentOffset % oggpage.BlockSize
		if lastMod >= currentMod && currentMod != 0 {
			return res, ErrBlockAlignmentViolation
		}
		lastOffset = currentOffset

		g := pa.Page.GranulePos
		if g != oggpage.NoGranule {
			if g > res.HighestGranule {
				res.HighestGranule = g
			}
			if haveLastGranule {
				if g < lastGranule {
					return res, ErrGranuleRegression
				}
				if lastGranuleIsData {
					delta := g - lastGranule
					if !haveDelta || delta < res.MinGranuleDelta {
						res.MinGranuleDelta = delta
					}
					if delta > res.MaxGranuleDelta {
						res.MaxGranuleDelta = delta
					}
					haveDelta = true
				}
			}
			lastGranule = g
			haveLastGranule = true
			lastGranuleIsData = i >= 2
		}
	}

	if !pages[len(pages)-1].Page.IsEOS() {
		return res, ErrMissingEOS
	}

	if err := checkChapters(pages, header.AudioChapters); err != nil {
		return res, err
	}

	return res, nil
}

func isMagicPage(pa oggstream.PageAt, magic string) bool {
	packets := pa.Page.Packets()
	if len(packets) == 0 || len(packets[0]) < 8 {
		return false
	}
	return string(packets[0][:8]) == magic
}

func checkChapters(pages []oggstream.PageAt, chapters []uint32) error {
	for i := 1; i < len(chapters); i++ {
		if chapters[i] <= chapters[i-1] {
			return ErrChaptersNotIncreasing
		}
	}

	bySeq := make(map[uint32]bool, len(pages))
	for _, pa := range pages {
		bySeq[pa.Page.PageSequence] = true
	}
	for _, c := range chapters {
		if !bySeq[c] {
			return ErrChapterMarkerMissing
		}
	}
	return nil
}
