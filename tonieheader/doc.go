// Package tonieheader implements the 4 KiB front-matter of a Tonie file: a
// length-prefixed, protobuf-wire-format record with six fixed fields (hash,
// audio_length, audio_id, audio_chapters, padding, usable).
//
// There is no schema evolution and no reflection: field numbers and wire
// types are frozen, and Serialize/Parse hand-encode exactly those six
// fields. A real protobuf library would buy nothing here and would invite
// silent schema drift on a format whose on-device parser is fixed.
package tonieheader
