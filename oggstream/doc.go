// Package oggstream iterates the pages of an in-memory Ogg Opus logical
// bitstream, classifies the two Opus header pages (OpusHead, OpusTags)
// against data pages, and answers the chapter-offset and granule-position
// questions the Tonie header needs.
//
// Every Tonie body is bounded (< 2 GiB) and held in memory as a whole, so
// this package works over a []byte rather than an io.Reader: there is no
// streaming/partial-read mode.
package oggstream
