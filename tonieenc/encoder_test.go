package tonieenc

import (
	"crypto/sha1"
	"errors"
	"io"
	"testing"

	"github.com/toniecodec/tonie/audiosrc"
	"github.com/toniecodec/tonie/oggstream"
	"github.com/toniecodec/tonie/opusenc"
	"github.com/toniecodec/tonie/statcheck"
	"github.com/toniecodec/tonie/tonieheader"
)

// fakeDecoder yields a fixed number of frames, all non-zero except the ones
// named in silentIdx, which are all-zero (to exercise trimSilenceAtBoundaries).
type fakeDecoder struct {
	frames [][]int16
	pos    int
}

func newFakeDecoder(numFrames int, silentIdx ...int) *fakeDecoder {
	silent := make(map[int]bool, len(silentIdx))
	for _, i := range silentIdx {
		silent[i] = true
	}
	frames := make([][]int16, numFrames)
	for i := range frames {
		frame := make([]int16, opusenc.FrameSamples*2)
		if !silent[i] {
			frame[0] = int16(i + 1)
		}
		frames[i] = frame
	}
	return &fakeDecoder{frames: frames}
}

func (d *fakeDecoder) Decode() ([]int16, error) {
	if d.pos >= len(d.frames) {
		return nil, io.EOF
	}
	f := d.frames[d.pos]
	d.pos++
	return f, nil
}

func (d *fakeDecoder) Close() error { return nil }

type fakeEncoder struct {
	bps  int
	mode opusenc.BitrateMode
	n    int
}

func (e *fakeEncoder) SetBitrate(bps int) error                      { e.bps = bps; return nil }
func (e *fakeEncoder) SetBitrateMode(mode opusenc.BitrateMode) error { e.mode = mode; return nil }
func (e *fakeEncoder) EncodeFrame(pcm []int16) ([]byte, error) {
	e.n++
	return []byte{byte(e.n), byte(e.n >> 8)}, nil
}

func newFakeEncoder() (opusenc.Encoder, error) {
	return &fakeEncoder{}, nil
}

func fakeOpen(numFrames int, silentIdx ...int) audiosrc.Opener {
	return func(path string) (audiosrc.Decoder, error) {
		return newFakeDecoder(numFrames, silentIdx...), nil
	}
}

func TestEncodeProducesValidBody(t *testing.T) {
	sources := []audiosrc.Source{{Path: "a.mp3"}, {Path: "b.mp3"}}
	opts := DefaultOptions()
	opts.AudioID = 0xCAFEBABE
	opts.BitrateBPS = 96000
	opts.DuplicateFirstChapter = false

	res, err := Encode(sources, opts, fakeOpen(5), newFakeEncoder, nil)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if res.AudioID != 0xCAFEBABE {
		t.Errorf("AudioID = 0x%x, want 0xCAFEBABE", res.AudioID)
	}
	if len(res.Chapters) != 2 || res.Chapters[0] != 0 {
		t.Fatalf("Chapters = %v, want [0, <seq>]", res.Chapters)
	}

	h := &tonieheader.Header{
		Hash:          sha1.Sum(res.Body),
		AudioID:       res.AudioID,
		AudioLength:   int32(len(res.Body)),
		AudioChapters: res.Chapters,
		Usable:        true,
	}

	if _, err := statcheck.Check(res.Body, h); err != nil {
		t.Errorf("statcheck.Check() error = %v", err)
	}

	headers := oggstream.Headers(res.Body)
	if len(headers) != 2 {
		t.Fatalf("Headers() returned %d pages, want 2", len(headers))
	}
}

func TestEncodeDeterministic(t *testing.T) {
	sources := []audiosrc.Source{{Path: "a.mp3"}}
	opts := DefaultOptions()
	opts.AudioID = 0xCAFEBABE
	opts.BitrateBPS = 96000

	r1, err := Encode(sources, opts, fakeOpen(3), newFakeEncoder, nil)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	r2, err := Encode(sources, opts, fakeOpen(3), newFakeEncoder, nil)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if string(r1.Body) != string(r2.Body) {
		t.Errorf("Encode() is not deterministic for identical inputs")
	}
}

func TestEncodeTimestampAudioID(t *testing.T) {
	sources := []audiosrc.Source{{Path: "a.mp3"}}
	opts := DefaultOptions()
	opts.BitrateBPS = 96000

	res, err := Encode(sources, opts, fakeOpen(1), newFakeEncoder, nil)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if res.AudioID == 0 {
		t.Errorf("AudioID = 0, want a derived timestamp")
	}
}

func TestEncodeRejectsBadBitrate(t *testing.T) {
	opts := DefaultOptions()
	opts.BitrateBPS = 96001
	_, err := Encode(nil, opts, fakeOpen(0), newFakeEncoder, nil)
	if !errors.Is(err, opusenc.ErrPaddingFailure) {
		t.Errorf("Encode() error = %v, want opusenc.ErrPaddingFailure", err)
	}
}

func TestEncodeTrimsBoundarySilence(t *testing.T) {
	sources := []audiosrc.Source{{Path: "a.mp3"}}
	opts := DefaultOptions()
	opts.BitrateBPS = 96000
	opts.AudioID = 1

	// Frames 0 and 4 are silent (leading/trailing); frames 1-3 are not.
	res, err := Encode(sources, opts, fakeOpen(5, 0, 4), newFakeEncoder, nil)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	pages := oggstream.Pages(res.Body)
	dataPages := 0
	for _, p := range pages {
		if p.Page.PageSequence >= 2 {
			dataPages++
		}
	}
	if dataPages != 3 {
		t.Errorf("data pages = %d, want 3 (silence trimmed)", dataPages)
	}
}

// TestEncodeDefaultDuplicatesFirstChapter documents the quirk
// DefaultOptions() reproduces on purpose: the first chapter marker is
// recorded twice. statcheck.Check correctly rejects the resulting
// audio_chapters as not strictly increasing — reproducing the quirk and
// validating the result are deliberately in tension (see DESIGN.md).
func TestEncodeDefaultDuplicatesFirstChapter(t *testing.T) {
	sources := []audiosrc.Source{{Path: "a.mp3"}, {Path: "b.mp3"}}
	opts := DefaultOptions()
	opts.AudioID = 0xCAFEBABE
	opts.BitrateBPS = 96000

	res, err := Encode(sources, opts, fakeOpen(3), newFakeEncoder, nil)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if len(res.Chapters) != 3 || res.Chapters[0] != 0 || res.Chapters[1] != 0 {
		t.Fatalf("Chapters = %v, want [0, 0, <seq>]", res.Chapters)
	}

	h := &tonieheader.Header{
		Hash:          sha1.Sum(res.Body),
		AudioID:       res.AudioID,
		AudioLength:   int32(len(res.Body)),
		AudioChapters: res.Chapters,
		Usable:        true,
	}
	if _, err := statcheck.Check(res.Body, h); err != statcheck.ErrChaptersNotIncreasing {
		t.Errorf("statcheck.Check() error = %v, want ErrChaptersNotIncreasing", err)
	}
}
