package tonieheader

import "encoding/binary"

// Size is the fixed total size of a Tonie file's front-matter: a 4-byte
// big-endian length prefix followed by a 4092-byte payload.
const Size = 4096

// payloadSize is the fixed protobuf payload length this format always
// declares in its length prefix (0x0FFC).
const payloadSize = 0x0FFC

// Field numbers, frozen: no schema evolution.
const (
	fieldHash          = 1
	fieldAudioLength   = 2
	fieldAudioID       = 3
	fieldAudioChapters = 4
	fieldPadding       = 5
	fieldUsable        = 6
)

// HashSize is the length of a SHA-1 digest.
const HashSize = 20

// Header is the parsed form of a Tonie file's front-matter.
type Header struct {
	// Hash is SHA-1(Body).
	Hash [HashSize]byte

	// AudioLength equals len(Body).
	AudioLength int32

	// AudioID is the Ogg logical-stream serial number used inside Body.
	AudioID uint32

	// AudioChapters holds strictly increasing Ogg page-sequence numbers
	// marking chapter starts. By convention AudioChapters[0] == 0.
	AudioChapters []uint32

	// Usable is always true for audio; false only appears in a hardware
	// service-file variant this codec never produces, but must round-trip.
	Usable bool
}

// Serialize encodes h into the fixed 4096-byte front-matter: a 4-byte
// big-endian length prefix (always 0x0FFC) followed by the protobuf-wire
// record. The padding field is sized, by a short fixed-point search, so the
// payload is exactly 4092 bytes — mirroring the solver shape oggpage uses
// to close page-padding gaps.
func Serialize(h *Header) ([]byte, error) {
	core := encodeCoreFields(h)
	if len(core)+1 /* field5 tag */ > payloadSize {
		return nil, ErrHeaderSerializationFailure
	}

	padLen, err := solvePaddingLength(len(core), payloadSize)
	if err != nil {
		return nil, err
	}

	payload := appendBytesField(append([]byte(nil), core...), fieldPadding, make([]byte, padLen))
	if len(payload) != payloadSize {
		return nil, ErrHeaderSerializationFailure
	}

	out := make([]byte, 4, Size)
	binary.BigEndian.PutUint32(out[0:4], uint32(payloadSize))
	out = append(out, payload...)
	return out, nil
}

// encodeCoreFields encodes every field except padding, in frozen field-number
// order.
func encodeCoreFields(h *Header) []byte {
	var buf []byte
	buf = appendBytesField(buf, fieldHash, h.Hash[:])
	buf = appendVarintField(buf, fieldAudioLength, uint64(uint32(h.AudioLength)))
	buf = appendVarintField(buf, fieldAudioID, uint64(h.AudioID))

	var packedChapters []byte
	for _, c := range h.AudioChapters {
		packedChapters = appendVarint(packedChapters, uint64(c))
	}
	buf = appendBytesField(buf, fieldAudioChapters, packedChapters)

	usable := uint64(0)
	if h.Usable {
		usable = 1
	}
	buf = appendVarintField(buf, fieldUsable, usable)
	return buf
}

// solvePaddingLength finds a padLen such that
// coreLen + len(tag+varint(padLen)+padding) == target, i.e. the encoded
// padding field exactly closes the remaining gap. The field-5 tag always
// fits in one byte (field number 5 < 16), so only the varint length of
// padLen itself is unknown; this tries each plausible varint width.
func solvePaddingLength(coreLen, target int) (int, error) {
	const tagBytes = 1
	for v := 1; v <= 5; v++ {
		padLen := target - coreLen - tagBytes - v
		if padLen < 0 {
			continue
		}
		if varintLen(uint64(padLen)) == v {
			return padLen, nil
		}
	}
	return 0, ErrHeaderSerializationFailure
}

// Parse decodes a 4096-byte front-matter buffer into a Header. It returns
// ErrCorruptHeader if the length prefix is missing, truncated, or exceeds
// 0x10000.
func Parse(data []byte) (*Header, error) {
	if len(data) < 4 {
		return nil, ErrCorruptHeader
	}
	length := binary.BigEndian.Uint32(data[0:4])
	if length > 0x10000 {
		return nil, ErrCorruptHeader
	}
	if len(data) < 4+int(length) {
		return nil, ErrCorruptHeader
	}
	payload := data[4 : 4+int(length)]

	h := &Header{}
	offset := 0
	for offset < len(payload) {
		tag, n, ok := readVarint(payload[offset:])
		if !ok {
			return nil, ErrCorruptHeader
		}
		offset += n
		field := int(tag >> 3)
		wireType := int(tag & 0x7)

		switch wireType {
		case wireVarint:
			v, n, ok := readVarint(payload[offset:])
			if !ok {
				return nil, ErrCorruptHeader
			}
			offset += n
			switch field {
			case fieldAudioLength:
				h.AudioLength = int32(v)
			case fieldAudioID:
				h.AudioID = uint32(v)
			case fieldUsable:
				h.Usable = v != 0
			}
		case wireBytes:
			l, n, ok := readVarint(payload[offset:])
			if !ok || offset+n+int(l) > len(payload) {
				return nil, ErrCorruptHeader
			}
			offset += n
			value := payload[offset : offset+int(l)]
			offset += int(l)

			switch field {
			case fieldHash:
				if len(value) != HashSize {
					return nil, ErrCorruptHeader
				}
				copy(h.Hash[:], value)
			case fieldAudioChapters:
				h.AudioChapters = decodePackedUint32(value)
			case fieldPadding:
				// Padding is write-only filler; nothing to record.
			}
		default:
			return nil, ErrCorruptHeader
		}
	}
	return h, nil
}

func decodePackedUint32(data []byte) []uint32 {
	var out []uint32
	offset := 0
	for offset < len(data) {
		v, n, ok := readVarint(data[offset:])
		if !ok {
			break
		}
		out = append(out, uint32(v))
		offset += n
	}
	return out
}
