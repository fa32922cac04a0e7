package tonieenc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/toniecodec/tonie/audiosrc"
	"github.com/toniecodec/tonie/id3meta"
	"github.com/toniecodec/tonie/oggpage"
	"github.com/toniecodec/tonie/oggstream"
	"github.com/toniecodec/tonie/opusenc"
	"github.com/toniecodec/tonie/progress"
)

// EncoderFactory constructs a fresh, unconfigured OpusEncoder collaborator
// for one Encode call. Encode configures bitrate and mode itself via
// opusenc.Encoder's SetBitrate/SetBitrateMode.
type EncoderFactory func() (opusenc.Encoder, error)

// Result is what Encode produces: the finished Body and the chapter
// markers recorded while building it.
type Result struct {
	Body     []byte
	Chapters []uint32
	AudioID  uint32
}

// Encode drives open and newEncoder across sources, in order, building one
// Body. See spec §4.5 for the full behavioral contract: audio_id
// derivation, per-page block-alignment padding, silence trimming at
// source boundaries, the soft size ceiling, and chapter marker recording.
func Encode(sources []audiosrc.Source, opts Options, open audiosrc.Opener, newEncoder EncoderFactory, sink *progress.Sink) (Result, error) {
	if err := opusenc.ValidateBitrate(opts.BitrateBPS); err != nil {
		return Result{}, err
	}

	audioID := opts.AudioID
	if audioID == 0 {
		audioID = uint32(time.Now().Unix())
	}

	enc, err := newEncoder()
	if err != nil {
		return Result{}, fmt.Errorf("tonieenc: create encoder: %w", err)
	}
	if err := enc.SetBitrate(opts.BitrateBPS); err != nil {
		return Result{}, fmt.Errorf("tonieenc: set bitrate: %w", err)
	}
	if err := enc.SetBitrateMode(opts.Mode); err != nil {
		return Result{}, fmt.Errorf("tonieenc: set bitrate mode: %w", err)
	}

	body, err := buildHeaderPrefix(audioID)
	if err != nil {
		return Result{}, err
	}

	var (
		chapters     []uint32
		nextSeq      = uint32(2)
		granule      uint64
		lastPageOff  = -1
		sawAnyPage   = false
		warnedAt1GiB = false
	)

	for i, src := range sources {
		if sink.Cancelled() {
			return Result{}, ErrCancelled
		}

		path := src.Path
		if opts.PrefixDir != "" {
			path = filepath.Join(opts.PrefixDir, fmt.Sprintf("%04d.mp3", i+1))
			if _, statErr := os.Stat(path); statErr != nil {
				return Result{}, fmt.Errorf("%w: %s", ErrPrefixMissing, path)
			}
		}

		if i == 0 {
			chapters = append(chapters, 0)
			if opts.DuplicateFirstChapter {
				chapters = append(chapters, 0)
			}
		} else {
			chapters = append(chapters, nextSeq)
		}

		var title string
		if info, err := id3meta.Read(path); err == nil {
			title = info.Title
		}
		sink.FileStart(i, path, title)

		dec, err := open(path)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %s: %v", ErrAudioDecodeFailure, path, err)
		}

		frames, err := decodeAllFrames(dec, path)
		dec.Close()
		if err != nil {
			return Result{}, err
		}
		frames = trimSilenceAtBoundaries(frames)

		for fi, frame := range frames {
			if sink.Cancelled() {
				return Result{}, ErrCancelled
			}

			packet, err := enc.EncodeFrame(frame)
			if err != nil {
				return Result{}, fmt.Errorf("tonieenc: encode frame: %w", err)
			}

			granule += opusenc.FrameSamples
			page := &oggpage.Page{
				SerialNumber: audioID,
				PageSequence: nextSeq,
				GranulePos:   granule,
				Segments:     oggpage.BuildSegmentTable(len(packet)),
				Payload:      packet,
			}
			nextSeq++

			pageStart := len(body)
			boundary := nextBlockBoundary(pageStart + page.EncodedSize())
			if err := page.PadToEndAt(pageStart, boundary); err != nil {
				return Result{}, fmt.Errorf("tonieenc: pad page: %w", err)
			}
			body = append(body, page.Encode()...)
			lastPageOff = pageStart
			sawAnyPage = true

			if len(body) > MaxBodySize {
				return Result{}, ErrSizeLimit
			}
			if len(body) > SizeWarning && !warnedAt1GiB {
				sink.Warning("body size has exceeded 1 GiB")
				warnedAt1GiB = true
			}
			sink.Progress(float64(fi+1) / float64(len(frames)))
		}

		sink.FileDone(i)
	}

	if sawAnyPage {
		if err := setEOS(body, lastPageOff); err != nil {
			return Result{}, err
		}
	}

	return Result{Body: body, Chapters: chapters, AudioID: audioID}, nil
}

// buildHeaderPrefix emits OpusHead (seq 0, BOS) and OpusTags (seq 1),
// sizing the OpusTags "pad" comment so the pair occupies exactly 0x200
// bytes.
func buildHeaderPrefix(audioID uint32) ([]byte, error) {
	head := oggstream.NewStereoOpusHead(48000).Encode()
	headPage := &oggpage.Page{
		HeaderType:   oggpage.FlagBOS,
		SerialNumber: audioID,
		PageSequence: 0,
		Segments:     oggpage.BuildSegmentTable(len(head)),
		Payload:      head,
	}
	headBytes := headPage.Encode()

	const headerRegion = 0x200
	target := headerRegion - len(headBytes)
	tagsPage := &oggpage.Page{
		SerialNumber: audioID,
		PageSequence: 1,
	}
	for padLen := target; padLen > 0; padLen-- {
		tags := oggstream.NewTonieTags("tonie", padLen).Encode()
		tagsPage.Segments = oggpage.BuildSegmentTable(len(tags))
		tagsPage.Payload = tags
		if tagsPage.EncodedSize() <= target {
			break
		}
	}

	out := append(append([]byte(nil), headBytes...), tagsPage.Encode()...)
	if len(out) != headerRegion {
		return nil, ErrHeaderPageOverflow
	}
	return out, nil
}

// setEOS flips the EOS flag on the page starting at offset within body and
// rewrites it in place — same length, fresh CRC.
func setEOS(body []byte, offset int) error {
	page, consumed, err := oggpage.Parse(body[offset:])
	if err != nil && err != oggpage.ErrBadCRC {
		return fmt.Errorf("tonieenc: locate final page: %w", err)
	}
	page.HeaderType |= oggpage.FlagEOS
	reencoded := page.Encode()
	if len(reencoded) != consumed {
		return fmt.Errorf("tonieenc: final page re-encode size mismatch")
	}
	copy(body[offset:], reencoded)
	return nil
}

func nextBlockBoundary(pos int) int {
	return (pos + oggpage.BlockSize - 1) / oggpage.BlockSize * oggpage.BlockSize
}

func decodeAllFrames(dec audiosrc.Decoder, path string) ([][]int16, error) {
	var frames [][]int16
	for {
		frame, err := dec.Decode()
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrAudioDecodeFailure, path, err)
		}
		frames = append(frames, frame)
	}
}

// trimSilenceAtBoundaries drops leading and trailing all-zero frames,
// reproducing the reference encoder's observed silence-trimming behavior
// without touching silence in the middle of a track.
func trimSilenceAtBoundaries(frames [][]int16) [][]int16 {
	start := 0
	for start < len(frames) && isSilentFrame(frames[start]) {
		start++
	}
	end := len(frames)
	for end > start && isSilentFrame(frames[end-1]) {
		end--
	}
	return frames[start:end]
}

func isSilentFrame(frame []int16) bool {
	for _, s := range frame {
		if s != 0 {
			return false
		}
	}
	return true
}
