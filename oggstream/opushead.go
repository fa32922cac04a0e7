package oggstream

import "encoding/binary"

const (
	opusHeadMagic = "OpusHead"
	opusTagsMagic = "OpusTags"

	// opusHeadSize is the fixed size of a mapping-family-0 OpusHead packet.
	opusHeadSize = 19

	// opusHeadVersion is the only version this format recognizes.
	opusHeadVersion = 1

	// DefaultPreSkip is the standard Opus encoder lookahead at 48 kHz.
	DefaultPreSkip = 312
)

// OpusHead is the identification header that must appear, alone, on page
// sequence 0 (the BOS page). Tonie files only ever use mapping family 0
// (mono/stereo, implicit channel order): the device always encodes 48 kHz
// stereo, so there is no multistream/ambisonics variant to support here.
type OpusHead struct {
	Channels   uint8
	PreSkip    uint16
	SampleRate uint32
	OutputGain int16
}

// Encode serializes the OpusHead to its 19-byte wire form.
func (h *OpusHead) Encode() []byte {
	data := make([]byte, opusHeadSize)
	copy(data[0:8], opusHeadMagic)
	data[8] = opusHeadVersion
	data[9] = h.Channels
	binary.LittleEndian.PutUint16(data[10:12], h.PreSkip)
	binary.LittleEndian.PutUint32(data[12:16], h.SampleRate)
	binary.LittleEndian.PutUint16(data[16:18], uint16(h.OutputGain))
	data[18] = 0 // mapping family 0
	return data
}

// ParseOpusHead parses a mapping-family-0 OpusHead packet.
func ParseOpusHead(data []byte) (*OpusHead, error) {
	if len(data) < opusHeadSize {
		return nil, ErrInvalidOpusHead
	}
	if string(data[0:8]) != opusHeadMagic {
		return nil, ErrInvalidOpusHead
	}
	if data[8] != opusHeadVersion {
		return nil, ErrInvalidOpusHead
	}
	if data[18] != 0 {
		return nil, ErrInvalidOpusHead
	}
	channels := data[9]
	if channels == 0 || channels > 2 {
		return nil, ErrInvalidOpusHead
	}
	return &OpusHead{
		Channels:   channels,
		PreSkip:    binary.LittleEndian.Uint16(data[10:12]),
		SampleRate: binary.LittleEndian.Uint32(data[12:16]),
		OutputGain: int16(binary.LittleEndian.Uint16(data[16:18])),
	}, nil
}

// NewStereoOpusHead returns a stereo OpusHead with the standard pre-skip and
// the given input sample rate (every Tonie encode passes 48000).
func NewStereoOpusHead(inputSampleRate uint32) *OpusHead {
	return &OpusHead{
		Channels:   2,
		PreSkip:    DefaultPreSkip,
		SampleRate: inputSampleRate,
		OutputGain: 0,
	}
}

// OpusTags is the comment header that must appear, alone or continued,
// immediately after OpusHead on page sequence 1.
//
// Comments are kept as an ordered slice of already-formatted "KEY=value"
// strings rather than a map: encoding must be deterministic (the same
// audio_id over the same PCM content must produce a byte-identical file),
// and map iteration order is not.
type OpusTags struct {
	Vendor   string
	Comments []string
}

// Encode serializes the OpusTags packet.
func (t *OpusTags) Encode() []byte {
	size := 8 + 4 + len(t.Vendor) + 4
	for _, c := range t.Comments {
		size += 4 + len(c)
	}

	data := make([]byte, size)
	offset := 0
	copy(data[offset:], opusTagsMagic)
	offset += 8
	binary.LittleEndian.PutUint32(data[offset:], uint32(len(t.Vendor)))
	offset += 4
	copy(data[offset:], t.Vendor)
	offset += len(t.Vendor)
	binary.LittleEndian.PutUint32(data[offset:], uint32(len(t.Comments)))
	offset += 4
	for _, c := range t.Comments {
		binary.LittleEndian.PutUint32(data[offset:], uint32(len(c)))
		offset += 4
		copy(data[offset:], c)
		offset += len(c)
	}
	return data
}

// ParseOpusTags parses an OpusTags packet (the concatenated payload of all
// pages carrying it — a single packet may span more than one page).
func ParseOpusTags(data []byte) (*OpusTags, error) {
	if len(data) < 16 {
		return nil, ErrInvalidOpusTags
	}
	if string(data[0:8]) != opusTagsMagic {
		return nil, ErrInvalidOpusTags
	}
	offset := 8
	vendorLen := int(binary.LittleEndian.Uint32(data[offset:]))
	offset += 4
	if offset+vendorLen > len(data) {
		return nil, ErrInvalidOpusTags
	}
	t := &OpusTags{Vendor: string(data[offset : offset+vendorLen])}
	offset += vendorLen

	if offset+4 > len(data) {
		return nil, ErrInvalidOpusTags
	}
	count := int(binary.LittleEndian.Uint32(data[offset:]))
	offset += 4

	for i := 0; i < count; i++ {
		if offset+4 > len(data) {
			return nil, ErrInvalidOpusTags
		}
		l := int(binary.LittleEndian.Uint32(data[offset:]))
		offset += 4
		if offset+l > len(data) {
			return nil, ErrInvalidOpusTags
		}
		t.Comments = append(t.Comments, string(data[offset:offset+l]))
		offset += l
	}
	return t, nil
}

// AddComment appends a "KEY=value" comment to the tags list.
func (t *OpusTags) AddComment(key, value string) {
	t.Comments = append(t.Comments, key+"="+value)
}

// NewTonieTags returns the OpusTags every Tonie encode starts from: an
// "encoder" comment and a large "pad" comment sized so that, together with
// OpusHead, the two header pages occupy exactly 0x200 bytes (so the first
// data page starts at body offset 0x1200). padLen is computed by the
// caller, which knows the exact page overhead.
func NewTonieTags(encoderName string, padLen int) *OpusTags {
	t := &OpusTags{Vendor: "tonie"}
	t.AddComment("encoder", encoderName)
	if padLen > 0 {
		t.AddComment("pad", string(make([]byte, padLen)))
	}
	return t
}
