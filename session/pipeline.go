// SPDX-License-Identifier: EPL-2.0

package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ik5/bgmix/audio"
)

// run is one Start..finish cycle.
type run struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error

	// deliverMtx is held around the cancellation check and the sink push.
	deliverMtx sync.Mutex
}

type runKey struct{}

// withRun tags the context handed to the endpoints with the run it belongs to.
func withRun(ctx context.Context, r *run) context.Context {
	return context.WithValue(ctx, runKey{}, r)
}

// calledFrom reports whether ctx is the one r gave to its source or sink,
// i.e. the caller is running on the pipeline goroutine.
func (r *run) calledFrom(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	owner, _ := ctx.Value(runKey{}).(*run)
	return owner == r
}

// abort cancels the run and returns once no push is in flight. Called from
// inside the sink (ctx is the run's own), it only cancels: the push in
// flight is the caller and the loop stops before the next one.
func (r *run) abort(ctx context.Context) {
	r.cancel()

	if r.calledFrom(ctx) {
		return
	}

	// Wait out a push that started before cancel.
	r.deliverMtx.Lock()
	r.deliverMtx.Unlock()
}

func (s *Session) pipeline(ctx context.Context, r *run, src audio.FrameSource, sink audio.FrameSink) {
	defer close(r.done)
	defer r.cancel()

	err := s.pump(ctx, r, src, sink)

	final := Stopped
	switch {
	case err == nil:
		if cerr := sink.Close(); cerr != nil {
			err = fmt.Errorf("close sink: %w", cerr)
			s.log.Error("session failed", "error", err, "frames", s.frames.Load())
			final = Errored
			break
		}
		s.log.Info("session finished", "frames", s.frames.Load())

	case errors.Is(err, ErrAborted):
		src.Cancel(ErrAborted)
		sink.Abort(ErrAborted)
		s.log.Info("session aborted", "frames", s.frames.Load())
		final = Aborted
		err = nil

	default:
		src.Cancel(err)
		sink.Abort(err)
		s.log.Error("session failed", "error", err, "frames", s.frames.Load())
		final = Errored
	}

	r.err = err

	s.mtx.Lock()
	if s.state == Running && s.run == r {
		s.state = final
	}
	s.mtx.Unlock()
}

func (s *Session) pump(ctx context.Context, r *run, src audio.FrameSource, sink audio.FrameSink) error {
	for index := int64(0); ; index++ {
		if ctx.Err() != nil {
			return ErrAborted
		}

		in, err := src.ReadFrame(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return ErrAborted
			}
			return fmt.Errorf("read frame %d: %w", index, err)
		}

		if index == 0 {
			s.checkRates(in)
		}

		out, err := s.process(in)
		if err != nil {
			return &ProcessingError{Frame: index, Err: err}
		}

		if err := s.deliver(ctx, r, sink, out); err != nil {
			return err
		}
	}
}

func (s *Session) process(in *audio.Frame) (*audio.Frame, error) {
	s.dspMtx.Lock()
	defer s.dspMtx.Unlock()

	return s.chain.Process(in)
}

func (s *Session) deliver(ctx context.Context, r *run, sink audio.FrameSink, f *audio.Frame) error {
	r.deliverMtx.Lock()
	defer r.deliverMtx.Unlock()

	if ctx.Err() != nil {
		return ErrAborted
	}

	if err := sink.WriteFrame(ctx, f); err != nil {
		if ctx.Err() != nil {
			return ErrAborted
		}
		return fmt.Errorf("write frame: %w", err)
	}

	s.frames.Add(1)

	return nil
}

// checkRates warns when the track was not resampled to the stream rate;
// the mixer steps one track sample per frame sample regardless.
func (s *Session) checkRates(f *audio.Frame) {
	s.dspMtx.Lock()
	t := s.mixer.Track()
	s.dspMtx.Unlock()

	if t != nil && t.SampleRate() != f.SampleRate {
		s.log.Warn("background track sample rate differs from stream",
			"track_rate", t.SampleRate(),
			"stream_rate", f.SampleRate,
		)
	}
}
