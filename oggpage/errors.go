package oggpage

import "errors"

// Package-level errors for Ogg page parsing and padding.
var (
	// ErrInvalidPage indicates the page structure is malformed: missing
	// "OggS" magic, an unsupported version, or truncated data.
	ErrInvalidPage = errors.New("oggpage: invalid page structure")

	// ErrBadCRC indicates the page CRC checksum does not match the computed
	// value. Typically indicates data corruption.
	ErrBadCRC = errors.New("oggpage: CRC mismatch")

	// ErrNoPaddingSolution indicates pad_to_end_at was asked to close a gap
	// that cannot be expressed with 254-byte padding segments: a gap of
	// exactly one byte (a single byte cannot be both a table entry and a
	// data byte), or any gap one more than a multiple of 255.
	ErrNoPaddingSolution = errors.New("oggpage: padding gap has no segment-table solution")
)
