// Package progress implements ProgressSink (spec §5, §6): the callback
// surface an Encoder reports through between Opus frames, and the
// cancellation channel an operation checks to honor a caller's abort
// request. Sink is a thin context.Context-aware wrapper around a
// zerolog.Logger, in the structured-logging idiom the rest of this
// module's ambient stack uses.
package progress
