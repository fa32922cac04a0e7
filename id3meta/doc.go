// Package id3meta reads ID3v2 tags from source MP3 files so an encode-time
// progress.FileStart event can surface a friendly track title. It is
// intentionally thin: the codec itself never writes or depends on ID3
// data, it only reads it for display purposes around the edges (spec §1).
package id3meta
