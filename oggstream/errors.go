package oggstream

import "errors"

// Package-level errors for Ogg Opus stream iteration.
var (
	// ErrInvalidOpusHead indicates the OpusHead packet is malformed or
	// carries an unsupported version/mapping family.
	ErrInvalidOpusHead = errors.New("oggstream: invalid OpusHead packet")

	// ErrInvalidOpusTags indicates the OpusTags packet is truncated or
	// otherwise malformed.
	ErrInvalidOpusTags = errors.New("oggstream: invalid OpusTags packet")

	// ErrChapterNotFound indicates a requested chapter page-sequence number
	// does not correspond to any page actually present in the stream.
	ErrChapterNotFound = errors.New("oggstream: chapter sequence number not found")

	// ErrMissingHeaders indicates the buffer does not begin with an
	// OpusHead page followed by an OpusTags page.
	ErrMissingHeaders = errors.New("oggstream: missing OpusHead/OpusTags header pages")
)
