package audiosrc

import "errors"

// Package-level errors.
var (
	// ErrSourceMissing indicates the path given to Sniff does not exist.
	ErrSourceMissing = errors.New("audiosrc: source file missing")

	// ErrUnsupportedFormat indicates Sniff could not match the source
	// bytes against any format this module expects an AudioDecoder to
	// handle.
	ErrUnsupportedFormat = errors.New("audiosrc: unsupported source format")

	// ErrDecodeFailure wraps a failure from the AudioDecoder collaborator
	// itself; always wrapped with %w so the underlying cause survives.
	ErrDecodeFailure = errors.New("audiosrc: decode failure")
)
