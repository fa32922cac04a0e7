// Package opusenc defines the OpusEncoder collaborator boundary: turning
// 48 kHz stereo PCM frames into Opus packets is out of scope for this
// module (see spec §1) and is supplied by the caller. This package owns
// the interface shape and the one piece of arithmetic that belongs with
// the codec regardless of which encoder implementation is plugged in: the
// CBR bitrate-divisibility check behind OpusPaddingFailure.
package opusenc
