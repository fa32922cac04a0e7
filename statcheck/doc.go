// Package statcheck validates the invariants a Tonie file body must hold:
// no page crosses a 4 KiB block boundary without ending on it, granule
// positions are monotonic,
// the two Opus header pages are present and correctly placed, and every
// declared chapter marker resolves to a real page.
package statcheck
