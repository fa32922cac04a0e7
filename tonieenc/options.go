package tonieenc

import "github.com/toniecodec/tonie/opusenc"

// MaxBodySize is the hard ceiling on Body size (spec §9 Open Question 2):
// ~1.994 GiB. Treated as a hard library limit pending hardware
// verification of whether the device actually rejects larger files.
const MaxBodySize = 0x77359400

// SizeWarning is the Body size at which a Warning progress event fires
// before the hard MaxBodySize ceiling is reached.
const SizeWarning = 1 << 30 // 1 GiB

// Options configures one Encode call.
type Options struct {
	// AudioID is the Ogg logical-stream serial and the header's audio_id.
	// If 0, Encode derives one from the current Unix timestamp.
	AudioID uint32

	// BitrateBPS is the target CBR bitrate in bits per second. Must be a
	// multiple of 24000 (see opusenc.ValidateBitrate).
	BitrateBPS int

	// Mode is the bitrate control mode. CBR is required for the
	// byte-identical determinism guarantee.
	Mode opusenc.BitrateMode

	// PrefixDir, if non-empty, causes Encode to ignore each Source's Path
	// and instead read "<PrefixDir>/NNNN.mp3" (1-based track number).
	PrefixDir string

	// DuplicateFirstChapter reproduces an undocumented quirk of the
	// reference encoder: the first chapter marker (0) is recorded twice
	// in audio_chapters — once as the explicit first chapter, once as the
	// implicit stream start. Default true, matching observed behavior;
	// see DESIGN.md for the tension this creates with I6 ("audio_chapters
	// is strictly increasing") when enabled.
	DuplicateFirstChapter bool
}

// DefaultOptions returns Options with CBR mode and the documented
// first-chapter duplication quirk enabled.
func DefaultOptions() Options {
	return Options{
		Mode:                  opusenc.ModeCBR,
		DuplicateFirstChapter: true,
	}
}
