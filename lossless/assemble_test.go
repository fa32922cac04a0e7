package lossless

import (
	"crypto/sha1"
	"testing"

	"github.com/toniecodec/tonie/oggpage"
	"github.com/toniecodec/tonie/oggstream"
	"github.com/toniecodec/tonie/statcheck"
	"github.com/toniecodec/tonie/tonieheader"
)

// buildTrack builds a standalone OpusHead+OpusTags+N data page Ogg stream
// for one track, granule incrementing by 960 per data page.
func buildTrack(t *testing.T, serial uint32, numDataPages int) []byte {
	t.Helper()
	var buf []byte

	head := oggstream.NewStereoOpusHead(48000).Encode()
	headPage := &oggpage.Page{HeaderType: oggpage.FlagBOS, SerialNumber: serial, PageSequence: 0, Segments: oggpage.BuildSegmentTable(len(head)), Payload: head}
	buf = append(buf, headPage.Encode()...)

	tags := (&oggstream.OpusTags{Vendor: "test"}).Encode()
	tagsPage := &oggpage.Page{SerialNumber: serial, PageSequence: 1, Segments: oggpage.BuildSegmentTable(len(tags)), Payload: tags}
	buf = append(buf, tagsPage.Encode()...)

	var granule uint64
	for i := 0; i < numDataPages; i++ {
		granule += 960
		flags := byte(0)
		if i == numDataPages-1 {
			flags = oggpage.FlagEOS
		}
		payload := []byte{byte(i), byte(i + 1)}
		p := &oggpage.Page{HeaderType: flags, GranulePos: granule, SerialNumber: serial, PageSequence: uint32(2 + i), Segments: oggpage.BuildSegmentTable(len(payload)), Payload: payload}
		buf = append(buf, p.Encode()...)
	}
	return buf
}

func TestAssembleTwoChapters(t *testing.T) {
	a := buildTrack(t, 11, 3)
	b := buildTrack(t, 22, 2)

	res, err := Assemble([][]byte{a, b}, nil, 0xCAFEBABE)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(res.Chapters) != 2 || res.Chapters[0] != 0 {
		t.Fatalf("Chapters = %v, want [0, <seq>]", res.Chapters)
	}

	headers := oggstream.Headers(res.Body)
	if len(headers) != 2 {
		t.Fatalf("Headers() returned %d pages, want 2", len(headers))
	}
	for _, h := range headers {
		if h.Page.SerialNumber != 0xCAFEBABE {
			t.Errorf("header page serial = %d, want 0xCAFEBABE", h.Page.SerialNumber)
		}
	}

	pages := oggstream.Pages(res.Body)
	dataPages := 0
	var lastGranule uint64
	for _, pa := range pages {
		if pa.Page.SerialNumber != 0xCAFEBABE {
			t.Errorf("page %d serial = %d, want 0xCAFEBABE", pa.Page.PageSequence, pa.Page.SerialNumber)
		}
		if pa.Page.PageSequence >= 2 {
			dataPages++
			if pa.Page.GranulePos < lastGranule {
				t.Errorf("granule regressed: %d < %d", pa.Page.GranulePos, lastGranule)
			}
			lastGranule = pa.Page.GranulePos
		}
	}
	if dataPages != 5 {
		t.Errorf("data pages = %d, want 5", dataPages)
	}
	if !pages[len(pages)-1].Page.IsEOS() {
		t.Errorf("last page missing EOS flag")
	}
}

func TestAssembleIntegrityPassesStatcheck(t *testing.T) {
	a := buildTrack(t, 11, 3)
	b := buildTrack(t, 22, 2)

	res, err := Assemble([][]byte{a, b}, nil, 7)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	h := &tonieheader.Header{
		Hash:          sha1.Sum(res.Body),
		AudioID:       7,
		AudioLength:   int32(len(res.Body)),
		AudioChapters: res.Chapters,
		Usable:        true,
	}

	if _, err := statcheck.Check(res.Body, h); err != nil {
		t.Errorf("statcheck.Check() error = %v", err)
	}
}

func TestAssembleNoChapters(t *testing.T) {
	if _, err := Assemble(nil, nil, 1); err != ErrNoChapters {
		t.Errorf("Assemble() error = %v, want ErrNoChapters", err)
	}
}
