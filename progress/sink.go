package progress

import (
	"context"

	"github.com/rs/zerolog"
)

// Sink is the ProgressSink collaborator: the Encoder reports through it
// between Opus frames, and checks its context for cancellation. A nil *Sink
// is valid and discards every event.
type Sink struct {
	ctx context.Context
	log zerolog.Logger
}

// NewSink returns a Sink that logs through log and is cancelled when ctx is
// done.
func NewSink(ctx context.Context, log zerolog.Logger) *Sink {
	return &Sink{ctx: ctx, log: log}
}

// Cancelled reports whether the operation driving this sink should abort.
// The Encoder checks this between Opus frames (spec §5) and, if it returns
// true, fails the current operation with ErrCancelled.
func (s *Sink) Cancelled() bool {
	if s == nil || s.ctx == nil {
		return false
	}
	select {
	case <-s.ctx.Done():
		return true
	default:
		return false
	}
}

// FileStart reports that encoding of one source has begun. title is a
// friendly display name (e.g. from an ID3 tag); it may be empty, in which
// case only path identifies the source.
func (s *Sink) FileStart(track int, path, title string) {
	if s == nil {
		return
	}
	evt := s.log.Info().Int("track", track).Str("path", path)
	if title != "" {
		evt = evt.Str("title", title)
	}
	evt.Msg("encoding started")
}

// Progress reports fractional completion of the current source, in [0, 1].
func (s *Sink) Progress(fraction float64) {
	if s == nil {
		return
	}
	s.log.Debug().Float64("fraction", fraction).Msg("encoding progress")
}

// FileDone reports that the current source has finished encoding.
func (s *Sink) FileDone(track int) {
	if s == nil {
		return
	}
	s.log.Info().Int("track", track).Msg("encoding finished")
}

// PostProcess reports a named post-processing stage (header finalization,
// lossless reassembly) has started.
func (s *Sink) PostProcess(stage string) {
	if s == nil {
		return
	}
	s.log.Info().Str("stage", stage).Msg("post-processing")
}

// Warning reports a recoverable problem (e.g. approaching the size cap).
func (s *Sink) Warning(text string) {
	if s == nil {
		return
	}
	s.log.Warn().Msg(text)
}

// Failed reports that the operation is aborting with an error.
func (s *Sink) Failed(text string) {
	if s == nil {
		return
	}
	s.log.Error().Msg(text)
}
