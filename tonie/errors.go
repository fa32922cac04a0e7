package tonie

import "errors"

// Package-level errors.
var (
	// ErrChapterIndexOutOfRange is returned by ExtractChapterToOgg when i
	// does not name a chapter this file actually has.
	ErrChapterIndexOutOfRange = errors.New("tonie: chapter index out of range")

	// ErrTruncated indicates the input to Read is shorter than the fixed
	// header plus the audio_length it declares.
	ErrTruncated = errors.New("tonie: truncated file")
)
