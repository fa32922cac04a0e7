package audiosrc

import (
	"fmt"
	"os"

	"github.com/gabriel-vasile/mimetype"
)

// supportedPrefixes lists the MIME top-level types this module hands to an
// AudioDecoder. Containers mimetype can't tell apart from raw audio (e.g.
// "audio/mpeg" for both MP2/MP3) still match here; the decoder collaborator
// is responsible for rejecting anything it can't actually decode.
var supportedPrefixes = []string{
	"audio/",
	"video/ogg", // Ogg container without an audio/ prefix match in some builds
}

// Sniff validates that path exists and that its content sniffs as an audio
// format, without reading the whole file into memory. It returns
// ErrSourceMissing if the file is absent and ErrUnsupportedFormat if the
// detected MIME type doesn't look like audio.
func Sniff(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrSourceMissing, path)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, path, err)
	}

	for m := mt; m != nil; m = m.Parent() {
		for _, prefix := range supportedPrefixes {
			if hasPrefix(m.String(), prefix) {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: %s: detected %s", ErrUnsupportedFormat, path, mt.String())
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
