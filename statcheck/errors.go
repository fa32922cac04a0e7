package statcheck

import "errors"

// Package-level errors raised while walking a Tonie body.
var (
	// ErrBlockAlignmentViolation indicates a page crossed into the next
	// 4 KiB block without ending exactly on its boundary.
	ErrBlockAlignmentViolation = errors.New("statcheck: page crosses 4KiB block boundary")

	// ErrGranuleRegression indicates a page's granule position is lower
	// than the previous page's, with neither being the "no granule"
	// sentinel.
	ErrGranuleRegression = errors.New("statcheck: granule position regressed")

	// ErrMissingHeaderPages indicates the body does not open with exactly
	// one OpusHead page (sequence 0) followed by one OpusTags page
	// (sequence 1).
	ErrMissingHeaderPages = errors.New("statcheck: missing OpusHead/OpusTags pages")

	// ErrMissingEOS indicates the last data page does not carry the EOS
	// flag.
	ErrMissingEOS = errors.New("statcheck: final page missing EOS flag")

	// ErrChapterMarkerMissing indicates a declared audio_chapters entry has
	// no corresponding page sequence number in the body.
	ErrChapterMarkerMissing = errors.New("statcheck: chapter marker has no matching page")

	// ErrChaptersNotIncreasing indicates audio_chapters is not strictly
	// increasing.
	ErrChaptersNotIncreasing = errors.New("statcheck: audio_chapters is not strictly increasing")

	// ErrAudioLengthMismatch indicates header.AudioLength does not equal
	// len(body).
	ErrAudioLengthMismatch = errors.New("statcheck: audio_length does not match body size")
)
