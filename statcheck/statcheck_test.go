package statcheck

import (
	"crypto/sha1"
	"testing"

	"github.com/toniecodec/tonie/oggpage"
	"github.com/toniecodec/tonie/oggstream"
	"github.com/toniecodec/tonie/tonieheader"
)

// buildBody constructs a small OpusHead+OpusTags+N data page body. Every
// page here fits well inside a single 4 KiB block, so block-alignment never
// triggers: these tests exercise the other invariants in isolation.
func buildBody(t *testing.T, granuleDeltas ...uint64) []byte {
	t.Helper()
	var buf []byte
	seq := uint32(0)

	head := oggstream.NewStereoOpusHead(48000).Encode()
	headPage := &oggpage.Page{HeaderType: oggpage.FlagBOS, SerialNumber: 1, PageSequence: seq, Segments: oggpage.BuildSegmentTable(len(head)), Payload: head}
	buf = append(buf, headPage.Encode()...)
	seq++

	tags := (&oggstream.OpusTags{Vendor: "test"}).Encode()
	tagsPage := &oggpage.Page{SerialNumber: 1, PageSequence: seq, Segments: oggpage.BuildSegmentTable(len(tags)), Payload: tags}
	buf = append(buf, tagsPage.Encode()...)
	seq++

	var granule uint64
	for i, delta := range granuleDeltas {
		granule += delta
		flags := byte(0)
		if i == len(granuleDeltas)-1 {
			flags = oggpage.FlagEOS
		}
		payload := []byte{byte(i), byte(i + 1)}
		p := &oggpage.Page{HeaderType: flags, GranulePos: granule, SerialNumber: 1, PageSequence: seq, Segments: oggpage.BuildSegmentTable(len(payload)), Payload: payload}
		buf = append(buf, p.Encode()...)
		seq++
	}
	return buf
}

func headerFor(body []byte, chapters []uint32) *tonieheader.Header {
	sum := sha1.Sum(body)
	return &tonieheader.Header{
		Hash:          sum,
		AudioLength:   int32(len(body)),
		AudioID:       1,
		AudioChapters: chapters,
		Usable:        true,
	}
}

func TestCheckValidBody(t *testing.T) {
	body := buildBody(t, 960, 960, 960)
	h := headerFor(body, []uint32{2})

	res, err := Check(body, h)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if !res.HashCorrect {
		t.Errorf("HashCorrect = false, want true")
	}
	if res.HighestGranule != 2880 {
		t.Errorf("HighestGranule = %d, want 2880", res.HighestGranule)
	}
	if res.MinGranuleDelta != 960 || res.MaxGranuleDelta != 960 {
		t.Errorf("granule deltas = %d/%d, want 960/960", res.MinGranuleDelta, res.MaxGranuleDelta)
	}
}

func TestCheckHashMismatchIsNotFatal(t *testing.T) {
	body := buildBody(t, 960)
	h := headerFor(body, []uint32{2})
	h.Hash[0] ^= 0xFF

	res, err := Check(body, h)
	if err != nil {
		t.Fatalf("Check() error = %v, want nil", err)
	}
	if res.HashCorrect {
		t.Errorf("HashCorrect = true, want false")
	}
}

func TestCheckAudioLengthMismatch(t *testing.T) {
	body := buildBody(t, 960)
	h := headerFor(body, []uint32{2})
	h.AudioLength = int32(len(body)) + 1

	if _, err := Check(body, h); err != ErrAudioLengthMismatch {
		t.Errorf("Check() error = %v, want ErrAudioLengthMismatch", err)
	}
}

func TestCheckMissingEOS(t *testing.T) {
	body := buildBody(t, 960, 960)
	// Clear the EOS flag on the last page by re-encoding without it.
	pages := oggstream.Pages(body)
	last := pages[len(pages)-1]
	last.Page.HeaderType = 0
	copy(body[last.Offset:], last.Page.Encode())
	h := headerFor(body, []uint32{2})

	if _, err := Check(body, h); err != ErrMissingEOS {
		t.Errorf("Check() error = %v, want ErrMissingEOS", err)
	}
}

func TestCheckGranuleRegression(t *testing.T) {
	body := buildBody(t, 960, 960)
	pages := oggstream.Pages(body)
	last := pages[len(pages)-1]
	last.Page.GranulePos = 1 // lower than the first data page's 960
	reencoded := last.Page.Encode()
	body = append(append([]byte{}, body[:last.Offset]...), reencoded...)
	h := headerFor(body, []uint32{2})

	if _, err := Check(body, h); err != ErrGranuleRegression {
		t.Errorf("Check() error = %v, want ErrGranuleRegression", err)
	}
}

func TestCheckChapterMarkerMissing(t *testing.T) {
	body := buildBody(t, 960, 960)
	h := headerFor(body, []uint32{99})

	if _, err := Check(body, h); err != ErrChapterMarkerMissing {
		t.Errorf("Check() error = %v, want ErrChapterMarkerMissing", err)
	}
}

func TestCheckChaptersNotIncreasing(t *testing.T) {
	body := buildBody(t, 960, 960, 960)
	h := headerFor(body, []uint32{3, 2})

	if _, err := Check(body, h); err != ErrChaptersNotIncreasing {
		t.Errorf("Check() error = %v, want ErrChaptersNotIncreasing", err)
	}
}

func TestCheckMissingHeaderPages(t *testing.T) {
	h := headerFor([]byte{}, nil)
	if _, err := Check([]byte{}, h); err != ErrMissingHeaderPages {
		t.Errorf("Check() error = %v, want ErrMissingHeaderPages for empty body", err)
	}
}
