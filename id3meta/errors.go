package id3meta

import "errors"

// ErrNoTag indicates the source file has no readable ID3v2 tag. Callers
// should fall back to the file's base name, not treat this as fatal.
var ErrNoTag = errors.New("id3meta: no ID3v2 tag found")
