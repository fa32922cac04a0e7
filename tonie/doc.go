// Package tonie is the TonieFile facade (C7): it orchestrates the header
// codec, Ogg container, statistics checker, encoder, and lossless
// assembler packages into the public operations a caller actually wants —
// build from sources, build a mix of pre-encoded and fresh tracks, read
// and validate an existing file, and extract chapters.
package tonie
