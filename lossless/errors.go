package lossless

import "errors"

// Package-level errors.
var (
	// ErrHeadersTooLarge indicates the OpusHead+OpusTags prefix taken from
	// the original body or the first chapter doesn't fit within the fixed
	// 0x200-byte header region.
	ErrHeadersTooLarge = errors.New("lossless: header pages exceed 0x200 bytes")

	// ErrNoChapters indicates Assemble was called with no chapter data.
	ErrNoChapters = errors.New("lossless: no chapters to assemble")

	// ErrNoDataPages indicates a chapter byte range contained no pages
	// with sequence >= 2, or none of those pages carries a real granule.
	ErrNoDataPages = errors.New("lossless: chapter has no data pages")
)
