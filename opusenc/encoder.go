package opusenc

// FrameSamples is the number of samples per channel in one 60 ms Opus frame
// at 48 kHz — the frame size the Encoder (C5) feeds per call.
const FrameSamples = 2880

// BitrateMode controls how the encoder sizes packets.
type BitrateMode int

const (
	// ModeVBR is unconstrained variable bitrate.
	ModeVBR BitrateMode = iota
	// ModeCVBR is constrained variable bitrate.
	ModeCVBR
	// ModeCBR is constant bitrate — the only mode that guarantees the
	// byte-precise page sizes the determinism requirement depends on.
	ModeCBR
)

// Encoder is the external collaborator contract for turning 48 kHz stereo
// PCM frames into Opus packets. Concrete encoding (CELT/SILK internals,
// range coding) is out of scope for this module; only the per-frame call
// shape is fixed here.
type Encoder interface {
	// SetBitrate sets the target bitrate in bits per second.
	SetBitrate(bps int) error

	// SetBitrateMode sets the bitrate control mode.
	SetBitrateMode(mode BitrateMode) error

	// EncodeFrame encodes one frame of FrameSamples*2 interleaved-stereo
	// int16 samples into a single Opus packet.
	EncodeFrame(pcm []int16) ([]byte, error)
}

// ValidateBitrate returns ErrPaddingFailure if bps is not a multiple of
// 24 kbps. The lossless page-padding math (oggpage.PadToEndAt) only has an
// exact solution when every CBR frame encodes to the same byte count; at
// any multiple of 24 kbps a FrameSamples (60 ms) frame is a whole number of
// bytes (180 bytes per 24 kbps), with no residual fraction to chase across
// a stream.
func ValidateBitrate(bps int) error {
	const granularity = 24000
	if bps <= 0 || bps%granularity != 0 {
		return ErrPaddingFailure
	}
	return nil
}
