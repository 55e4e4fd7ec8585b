// SPDX-License-Identifier: EPL-2.0

package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/ik5/bgmix/audio"
)

type options struct {
	logger  *slog.Logger
	lowpass bool
	cutoff  float64
}

// Option configures a Session.
type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithLowPass appends a low-pass filter with the given cutoff after the mixer.
func WithLowPass(cutoffHz float64) Option {
	return func(o *options) {
		o.lowpass = true
		o.cutoff = cutoffHz
	}
}

// Session mixes background music into a frame stream. All methods are safe
// for concurrent use.
type Session struct {
	id  string
	log *slog.Logger

	mtx   sync.Mutex
	state State
	run   *run

	// dspMtx guards the transforms. The pipeline holds it for one frame at a
	// time, so a track swap always lands between frames.
	dspMtx  sync.Mutex
	mixer   *audio.BackgroundMixer
	lowpass *audio.LowPass
	chain   audio.Chain

	frames atomic.Int64
}

// New creates an Idle session with a fresh id. Without a track the session
// passes frames through; WithLowPass adds the filter stage after the mixer.
// An invalid cutoff is reported here rather than at Start.
func New(opts ...Option) (*Session, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	id := uuid.NewString()
	s := &Session{
		id:    id,
		log:   o.logger.With("session", id),
		mixer: audio.NewBackgroundMixer(),
	}
	s.chain = audio.Chain{s.mixer}

	if o.lowpass {
		lp, err := audio.NewLowPass(o.cutoff, s.log)
		if err != nil {
			return nil, fmt.Errorf("session low-pass: %w", err)
		}
		s.lowpass = lp
		s.chain = append(s.chain, lp)
	}

	return s, nil
}

// ID is the uuid attached to every log line of the session.
func (s *Session) ID() string { return s.id }

func (s *Session) State() State {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.state
}

// Cursor is the mixer's position in the background track.
func (s *Session) Cursor() int {
	s.dspMtx.Lock()
	defer s.dspMtx.Unlock()

	return s.mixer.Cursor()
}

// FramesProcessed counts frames delivered to the sink by the current or last run.
func (s *Session) FramesProcessed() int64 { return s.frames.Load() }

// Dispatch applies cmd to the session.
func (s *Session) Dispatch(ctx context.Context, cmd Command) error {
	s.mtx.Lock()

	if s.state == Closed {
		s.mtx.Unlock()
		return ErrClosed
	}

	switch c := deref(cmd).(type) {
	case SetTrack:
		defer s.mtx.Unlock()
		s.setTrack(c.Track)
		return nil

	case Start:
		defer s.mtx.Unlock()
		return s.start(ctx, c)

	case Abort:
		if s.state != Running {
			s.mtx.Unlock()
			return ErrNotRunning
		}
		r := s.run
		s.mtx.Unlock()

		s.log.Info("abort requested")
		r.abort(ctx)
		return nil

	default:
		s.mtx.Unlock()
		return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}

// deref accepts the pointer forms of the commands; a nil pointer stays
// unknown.
func deref(cmd Command) Command {
	switch c := cmd.(type) {
	case *SetTrack:
		if c != nil {
			return *c
		}
	case *Start:
		if c != nil {
			return *c
		}
	case *Abort:
		if c != nil {
			return *c
		}
	default:
		return cmd
	}

	return nil
}

// SetBackgroundTrack dispatches SetTrack.
func (s *Session) SetBackgroundTrack(ctx context.Context, t *audio.Track) error {
	return s.Dispatch(ctx, SetTrack{Track: t})
}

// Start dispatches Start.
func (s *Session) Start(ctx context.Context, src audio.FrameSource, sink audio.FrameSink) error {
	return s.Dispatch(ctx, Start{Source: src, Sink: sink})
}

// Abort dispatches Abort. A source or sink stopping its own session passes
// the context it was handed, in which case Abort returns without waiting for
// the push in flight.
func (s *Session) Abort(ctx context.Context) error {
	return s.Dispatch(ctx, Abort{})
}

// setTrack expects s.mtx to be held.
func (s *Session) setTrack(t *audio.Track) {
	s.dspMtx.Lock()
	s.mixer.SetTrack(t)
	s.dspMtx.Unlock()

	if t == nil {
		s.log.Info("background track cleared")
	} else {
		s.log.Info("background track installed",
			"channels", t.NumChannels(),
			"samples", t.Len(),
			"sample_rate", t.SampleRate(),
		)
	}

	if s.state == Idle {
		s.state = Configured
	}
}

// start expects s.mtx to be held.
func (s *Session) start(ctx context.Context, c Start) error {
	if s.state == Running {
		return fmt.Errorf("%w: start while %s", ErrInvalidTransition, s.state)
	}
	if c.Source == nil || c.Sink == nil {
		return ErrNilEndpoint
	}

	s.dspMtx.Lock()
	if s.lowpass != nil {
		s.lowpass.Reset()
	}
	s.dspMtx.Unlock()

	s.frames.Store(0)

	// The pipeline outlives the Dispatch call but keeps its values.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	r := &run{cancel: cancel, done: make(chan struct{})}
	runCtx = withRun(runCtx, r)

	s.run = r
	s.state = Running

	s.log.Info("session started", "lowpass", s.lowpass != nil)

	go s.pipeline(runCtx, r, c.Source, c.Sink)

	return nil
}

// Wait blocks until the current run finishes or ctx is done. It returns nil
// for runs that ended normally or were aborted.
func (s *Session) Wait(ctx context.Context) error {
	s.mtx.Lock()
	r := s.run
	s.mtx.Unlock()

	if r == nil {
		return ErrNotRunning
	}

	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close aborts any running pipeline, waits for it and releases the track.
// Every later command fails with ErrClosed.
//
// Close waits for the pipeline goroutine, so it must not be called from a
// FrameSource or FrameSink method. An endpoint that wants to stop its own
// session calls Abort with the context it was handed.
func (s *Session) Close() error {
	s.mtx.Lock()
	if s.state == Closed {
		s.mtx.Unlock()
		return nil
	}

	running := s.state == Running
	r := s.run
	s.state = Closed
	s.mtx.Unlock()

	if running {
		r.abort(context.Background())
		<-r.done
	}

	s.dspMtx.Lock()
	s.mixer.SetTrack(nil)
	s.dspMtx.Unlock()

	s.log.Info("session closed")

	return nil
}
