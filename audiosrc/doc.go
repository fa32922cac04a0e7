// Package audiosrc defines the AudioDecoder collaborator boundary: decoding
// an arbitrary source audio file (MP3/FLAC/WAV/M4A/AAC/WMA/OGG) down to
// 48 kHz 16-bit stereo PCM is out of scope for this module and is supplied
// by the caller. This package only owns the interface shape and a format
// sniffer used to reject unsupported inputs before they ever reach a
// decoder.
package audiosrc
