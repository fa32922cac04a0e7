package tonieenc

import "errors"

// Package-level errors.
var (
	// ErrPrefixMissing indicates the expected <prefix_dir>/NNNN.mp3 track
	// file does not exist.
	ErrPrefixMissing = errors.New("tonieenc: prefix track file missing")

	// ErrAudioDecodeFailure wraps a failure from the AudioDecoder
	// collaborator.
	ErrAudioDecodeFailure = errors.New("tonieenc: audio decode failure")

	// ErrSizeLimit indicates the body grew past MaxBodySize.
	ErrSizeLimit = errors.New("tonieenc: body exceeds size limit")

	// ErrCancelled indicates the caller's progress.Sink signalled
	// cancellation between frames.
	ErrCancelled = errors.New("tonieenc: encode cancelled")

	// ErrHeaderPageOverflow indicates the OpusHead+OpusTags pair could not
	// be padded to fit within the fixed 0x200-byte header region.
	ErrHeaderPageOverflow = errors.New("tonieenc: header pages do not fit in 0x200 bytes")
)
