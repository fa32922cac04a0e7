package tonieheader

import "errors"

// Package-level errors for the Tonie file header.
var (
	// ErrHeaderSerializationFailure indicates the fixed fields (hash,
	// audio_length, audio_id, audio_chapters, usable), without any padding,
	// already exceed the 4092-byte payload budget.
	ErrHeaderSerializationFailure = errors.New("tonieheader: fields exceed 4092-byte payload without padding")

	// ErrCorruptHeader indicates the 4-byte length prefix is missing,
	// truncated, or implausibly large (> 0x10000).
	ErrCorruptHeader = errors.New("tonieheader: corrupt header")
)
