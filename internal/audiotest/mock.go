// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds sources and sinks shared by tests across packages.
package audiotest

import (
	"context"
	"io"
	"math"
	"sync"

	"github.com/ik5/bgmix/audio"
)

// MockSource generates interleaved audio from a waveform function. It
// implements audio.Source.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int // per channel
	waveform     func(sample int, channel int) float32

	Closed bool
}

// NewMockSource creates a source of totalSamples frames whose values come from waveform.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalSamples, 0)
}

func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, _ int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

// NewRampSource yields channel*1000+sample, which makes sample positions
// easy to assert on.
func NewRampSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		return float32(channel*1000 + sample)
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }

func (m *MockSource) Close() error {
	m.Closed = true
	return nil
}

// Reset rewinds the generator.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)

	for frame := range frames {
		idx := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(idx, ch)
		}
	}

	m.generated += frames

	if m.generated >= m.totalSamples {
		return frames * m.channels, io.EOF
	}

	return frames * m.channels, nil
}

// FilledFrame returns a frame whose samples all equal v.
func FilledFrame(rate, channels, frames int, v float32) *audio.Frame {
	f := audio.NewFrame(rate, channels, frames, 0)
	for _, ch := range f.Channels {
		for i := range ch {
			ch[i] = v
		}
	}

	return f
}

// Frames returns n filled frames with consecutive timestamps.
func Frames(n, rate, channels, size int, v float32) []*audio.Frame {
	out := make([]*audio.Frame, n)
	for i := range out {
		out[i] = FilledFrame(rate, channels, size, v)
		out[i].Timestamp = int64(i*size) * 1_000_000 / int64(rate)
	}

	return out
}

// SliceFrameSource serves a fixed list of frames and then Err (io.EOF when nil).
type SliceFrameSource struct {
	mtx    sync.Mutex
	frames []*audio.Frame
	next   int
	reason error
	cancel bool

	Err error
}

func NewSliceFrameSource(frames ...*audio.Frame) *SliceFrameSource {
	return &SliceFrameSource{frames: frames}
}

func (s *SliceFrameSource) ReadFrame(ctx context.Context) (*audio.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.next >= len(s.frames) {
		if s.Err != nil {
			return nil, s.Err
		}
		return nil, io.EOF
	}

	f := s.frames[s.next]
	s.next++

	return f, nil
}

func (s *SliceFrameSource) Cancel(reason error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.cancel = true
	s.reason = reason
}

// Cancelled reports whether Cancel was called and with which reason.
func (s *SliceFrameSource) Cancelled() (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.cancel, s.reason
}

// EndlessFrameSource produces filled frames until cancelled.
type EndlessFrameSource struct {
	Rate     int
	Channels int
	Size     int
	Value    float32

	mtx    sync.Mutex
	reason error
	cancel bool
}

func (s *EndlessFrameSource) ReadFrame(ctx context.Context) (*audio.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return FilledFrame(s.Rate, s.Channels, s.Size, s.Value), nil
}

func (s *EndlessFrameSource) Cancel(reason error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.cancel = true
	s.reason = reason
}

func (s *EndlessFrameSource) Cancelled() (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.cancel, s.reason
}

// RecordingSink keeps clones of every frame written to it.
type RecordingSink struct {
	mtx     sync.Mutex
	frames  []*audio.Frame
	closed  bool
	aborted bool
	reason  error

	// OnWrite, when set, is called after each frame is recorded with the
	// context passed to WriteFrame and the number of frames seen so far.
	OnWrite func(ctx context.Context, n int)
	// Err, when set, is returned by WriteFrame instead of recording.
	Err error
}

func (s *RecordingSink) WriteFrame(ctx context.Context, f *audio.Frame) error {
	s.mtx.Lock()
	if s.Err != nil {
		s.mtx.Unlock()
		return s.Err
	}

	s.frames = append(s.frames, f.Clone())
	n := len(s.frames)
	hook := s.OnWrite
	s.mtx.Unlock()

	if hook != nil {
		hook(ctx, n)
	}

	return nil
}

func (s *RecordingSink) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.closed = true
	return nil
}

func (s *RecordingSink) Abort(reason error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.aborted = true
	s.reason = reason
}

// Frames returns the recorded frames.
func (s *RecordingSink) Frames() []*audio.Frame {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return append([]*audio.Frame(nil), s.frames...)
}

func (s *RecordingSink) Len() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return len(s.frames)
}

func (s *RecordingSink) Closed() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.closed
}

// Aborted reports whether Abort was called and with which reason.
func (s *RecordingSink) Aborted() (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.aborted, s.reason
}
