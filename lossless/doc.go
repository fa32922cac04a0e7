// Package lossless implements the LosslessAssembler (C6): reassembling a
// Body from pre-encoded per-chapter Ogg byte ranges without touching the
// Opus payload bytes — only page headers (sequence, serial, granule, EOS)
// and segment-table padding are rewritten.
package lossless
