package audiosrc

// Decoder is the external collaborator contract for turning one source
// audio file into 48 kHz, 16-bit, interleaved-stereo PCM. Resampling and
// channel mixing are the decoder's responsibility; this module only ever
// sees the resulting samples.
type Decoder interface {
	// Decode returns the next frame of PCM samples, or an empty slice and
	// io.EOF once the source is exhausted.
	Decode() ([]int16, error)

	// Close releases any resources (file handles, codec contexts) held by
	// the decoder.
	Close() error
}

// Opener constructs a Decoder for a source file path. Concrete
// implementations (MP3/FLAC/WAV/M4A/AAC/WMA/OGG) are supplied by the
// caller; this package fixes only the shape the Encoder depends on.
type Opener func(path string) (Decoder, error)

// Source is one entry of an encode playlist.
type Source struct {
	// Path is the source audio file on disk.
	Path string
}
