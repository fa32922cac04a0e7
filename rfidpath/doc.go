// Package rfidpath implements the informative directory-naming convention
// (spec §6) a Tonie lives under on an SD card: <REVERSED_RFID_UID_8>/500304E0.
// The codec does not enforce this layout; it only needs to be able to
// compute and parse it so a CLI or GUI layer built on top of this module
// doesn't have to reverse-engineer the convention itself.
package rfidpath
