// Package oggpage implements a single Ogg page: parsing, synthesis,
// CRC-32 checksumming, segment-table (255-byte lacing) management, and the
// Tonie-specific intra-page padding that forces a page to end on a 4 KiB
// boundary.
package oggpage

import (
	"encoding/binary"
)

// Page header flag constants (byte 5 of the page header, per RFC 3533).
const (
	// FlagContinuation marks a page that continues a packet started on a
	// previous page.
	FlagContinuation = 0x01

	// FlagBOS (Beginning of Stream) marks the first page of a logical
	// bitstream.
	FlagBOS = 0x02

	// FlagEOS (End of Stream) marks the last page of a logical bitstream.
	FlagEOS = 0x04
)

// NoGranule is the sentinel granule position used on continuation pages
// that carry no meaningful timestamp.
const NoGranule = ^uint64(0)

// BlockSize is the Tonie device's page-alignment unit: every page, once
// written, must end at a file offset that is a multiple of BlockSize.
const BlockSize = 0x1000

const (
	// headerSize is the fixed portion of the page header, before the
	// segment table.
	headerSize = 27

	// magic is the capture pattern that identifies an Ogg page.
	magic = "OggS"

	// maxSegmentBytes is the largest lacing value: a full 255-byte segment,
	// which does not terminate its packet.
	maxSegmentBytes = 255

	// padSegmentBytes is the segment size used for Tonie's pad_to_end_at
	// solver. 254, not 255: a 255-byte segment requires two table entries
	// (0xFF then 0x00), which would throw off the entries-vs-data-bytes
	// arithmetic the solver depends on.
	padSegmentBytes = 254
)

// Page is a single Ogg page.
type Page struct {
	// Version is the stream structure version (always 0).
	Version byte

	// HeaderType holds the continuation/BOS/EOS flags.
	HeaderType byte

	// GranulePos is the granule position: the sample count (at 48 kHz for
	// Opus) decoded through the end of this page. NoGranule marks a
	// continuation page with no meaningful timestamp.
	GranulePos uint64

	// SerialNumber identifies the logical bitstream. Within a Tonie body
	// this equals the file's audio_id.
	SerialNumber uint32

	// PageSequence is this page's sequence number within the bitstream.
	PageSequence uint32

	// Segments is the segment (lacing) table: one byte per 255-byte (or
	// shorter, terminal) chunk of the payload.
	Segments []byte

	// Payload is the concatenated packet data described by Segments.
	Payload []byte
}

// IsBOS reports whether this is a Beginning-of-Stream page.
func (p *Page) IsBOS() bool { return p.HeaderType&FlagBOS != 0 }

// IsEOS reports whether this is an End-of-Stream page.
func (p *Page) IsEOS() bool { return p.HeaderType&FlagEOS != 0 }

// IsContinuation reports whether this page continues a packet begun on a
// previous page.
func (p *Page) IsContinuation() bool { return p.HeaderType&FlagContinuation != 0 }

// BuildSegmentTable returns the segment table for a single packet of the
// given length: ⌊len/255⌋ entries of 0xFF, plus one trailing entry of
// len mod 255 — emitted even when it is 0, since that is how a packet whose
// length is an exact multiple of 255 is terminated.
func BuildSegmentTable(packetLen int) []byte {
	n := packetLen / maxSegmentBytes
	rem := packetLen % maxSegmentBytes
	segments := make([]byte, n+1)
	for i := 0; i < n; i++ {
		segments[i] = 0xFF
	}
	segments[n] = byte(rem)
	return segments
}

// ParsePacketLengths splits a segment table into complete-packet lengths.
// A trailing run of 0xFF entries with no terminating value below 255 is not
// returned as a packet: it denotes a packet that continues on the next page.
func ParsePacketLengths(segments []byte) []int {
	if len(segments) == 0 {
		return nil
	}
	var lengths []int
	cur := 0
	for _, s := range segments {
		cur += int(s)
		if s < 0xFF {
			lengths = append(lengths, cur)
			cur = 0
		}
	}
	return lengths
}

// Packets splits the page's payload into packets using its segment table.
// Only packets terminated on this page are returned: a trailing packet that
// continues on the next page is left out, as in ParsePacketLengths.
func (p *Page) Packets() [][]byte {
	lengths := ParsePacketLengths(p.Segments)
	if len(lengths) == 0 {
		return nil
	}
	packets := make([][]byte, 0, len(lengths))
	offset := 0
	for _, l := range lengths {
		end := offset + l
		if end > len(p.Payload) {
			end = len(p.Payload)
		}
		packets = append(packets, p.Payload[offset:end])
		offset = end
	}
	return packets
}

// EncodedSize returns the number of bytes Encode would produce: header,
// segment table, and payload.
func (p *Page) EncodedSize() int {
	return headerSize + len(p.Segments) + len(p.Payload)
}

// Encode serializes the page: 27-byte header, segment table, payload. The
// CRC field is zeroed, the whole buffer is checksummed with the Ogg
// CRC-32 (polynomial 0x04C11DB7, no reflection), and the result is written
// back into the header.
func (p *Page) Encode() []byte {
	tableSize := headerSize + len(p.Segments)
	total := tableSize + len(p.Payload)
	data := make([]byte, total)

	copy(data[0:4], magic)
	data[4] = p.Version
	data[5] = p.HeaderType
	binary.LittleEndian.PutUint64(data[6:14], p.GranulePos)
	binary.LittleEndian.PutUint32(data[14:18], p.SerialNumber)
	binary.LittleEndian.PutUint32(data[18:22], p.PageSequence)
	// CRC at data[22:26] stays zero until computed below.
	data[26] = byte(len(p.Segments))
	copy(data[27:], p.Segments)
	copy(data[tableSize:], p.Payload)

	crc := oggCRC(data)
	binary.LittleEndian.PutUint32(data[22:26], crc)

	return data
}

// Parse reads a single page from the front of data. It returns the parsed
// page, the number of bytes consumed, and an error. ErrInvalidPage means
// the magic signature is missing or the buffer is truncated; ErrBadCRC
// means the page's stored checksum does not match its contents.
func Parse(data []byte) (*Page, int, error) {
	if len(data) < headerSize {
		return nil, 0, ErrInvalidPage
	}
	if string(data[0:4]) != magic {
		return nil, 0, ErrInvalidPage
	}

	p := &Page{
		Version:      data[4],
		HeaderType:   data[5],
		GranulePos:   binary.LittleEndian.Uint64(data[6:14]),
		SerialNumber: binary.LittleEndian.Uint32(data[14:18]),
		PageSequence: binary.LittleEndian.Uint32(data[18:22]),
	}
	storedCRC := binary.LittleEndian.Uint32(data[22:26])

	numSegments := int(data[26])
	tableSize := headerSize + numSegments
	if len(data) < tableSize {
		return nil, 0, ErrInvalidPage
	}
	p.Segments = append([]byte(nil), data[27:tableSize]...)

	payloadSize := 0
	for _, s := range p.Segments {
		payloadSize += int(s)
	}
	total := tableSize + payloadSize
	if len(data) < total {
		return nil, 0, ErrInvalidPage
	}
	p.Payload = append([]byte(nil), data[tableSize:total]...)

	verify := append([]byte(nil), data[:total]...)
	verify[22], verify[23], verify[24], verify[25] = 0, 0, 0, 0
	if oggCRC(verify) != storedCRC {
		// The page's structure (header fields, segment table, payload
		// range) is still trustworthy even though its checksum does not
		// match — a single bit flip elsewhere in the body must not block
		// structural operations like chapter/granule extraction, only the
		// whole-body SHA-1 integrity check (I2) which callers check
		// separately.
		return p, total, ErrBadCRC
	}

	return p, total, nil
}

// PadToEndAt inflates the page with zero-filled padding segments so that,
// once written starting at pageStart, it ends exactly at boundary.
//
// F = boundary - (pageStart + EncodedSize()) is the number of bytes that
// must be absorbed. Because every additional segment's table entry itself
// consumes a byte, F is split into paddingData (zero payload bytes) and
// segmentEntries (table bytes) such that paddingData + segmentEntries == F
// and segmentEntries == ceil(paddingData / 254); padSegmentBytes (254, not
// 255) avoids the two-entry encoding a 255-byte segment would require.
//
// If F < 1 the page already fits and PadToEndAt is a no-op. F == 1 has no
// solution (a single byte can't be both a table entry and a data byte) and
// returns ErrNoPaddingSolution. Under the same constraint every F that is
// one more than a multiple of 255 (256, 511, ...) has no solution either,
// and also returns ErrNoPaddingSolution.
func (p *Page) PadToEndAt(pageStart, boundary int) error {
	f := boundary - (pageStart + p.EncodedSize())
	if f < 1 {
		return nil
	}
	if f == 1 {
		return ErrNoPaddingSolution
	}

	sizes, ok := solvePaddingSegments(f)
	if !ok {
		return ErrNoPaddingSolution
	}
	for _, l := range sizes {
		p.Segments = append(p.Segments, byte(l))
		p.Payload = append(p.Payload, make([]byte, l)...)
	}
	return nil
}

// solvePaddingSegments finds segment sizes (each 0..254) whose data bytes
// plus one table-entry byte apiece sum to exactly f. It is a small
// fixed-point iteration: guess a number of entries, derive the padding data
// that leaves, recompute how many entries that data actually needs, and
// repeat. Most F converge in one or two steps; a few (where the entries
// count would oscillate between two values forever, e.g. F that sits right
// at a 255-byte packing boundary) have no exact solution, and the loop
// detects that by giving up after a bounded number of steps.
func solvePaddingSegments(f int) ([]int, bool) {
	entries := (f + maxSegmentBytes - 1) / maxSegmentBytes // ceil(f/255)

	for i := 0; i < 8; i++ {
		if entries < 0 {
			return nil, false
		}
		paddingData := f - entries
		if paddingData < 0 {
			entries--
			continue
		}

		needed := 0
		if paddingData > 0 {
			needed = (paddingData + padSegmentBytes - 1) / padSegmentBytes
		}

		if needed == entries {
			sizes := make([]int, entries)
			remaining := paddingData
			for j := range sizes {
				if remaining >= padSegmentBytes {
					sizes[j] = padSegmentBytes
					remaining -= padSegmentBytes
				} else {
					sizes[j] = remaining
					remaining = 0
				}
			}
			return sizes, true
		}
		entries = needed
	}
	return nil, false
}
