// Package tonieenc implements the Encoder (C5): driving one or more
// AudioDecoder/OpusEncoder collaborators to build a Tonie Body from a
// playlist of source audio files, emitting block-aligned Ogg pages and
// recording chapter markers as it goes.
package tonieenc
