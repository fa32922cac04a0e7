package opusenc

import "errors"

var (
	// ErrPaddingFailure indicates a requested bitrate is not a multiple of
	// 24 kbps and therefore cannot be byte-precisely padded in CBR mode.
	ErrPaddingFailure = errors.New("opusenc: bitrate is not byte-precise for CBR padding")
)
