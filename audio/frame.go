// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"time"
)

// Frame is one planar slice of audio: one []float32 per channel, all of the
// same length. Timestamp is in microseconds, as delivered by the producer.
type Frame struct {
	Channels   [][]float32
	SampleRate int
	Timestamp  int64
}

// NewFrame allocates a zeroed frame of the given shape.
func NewFrame(sampleRate, channels, frames int, timestamp int64) *Frame {
	f := &Frame{
		Channels:   make([][]float32, channels),
		SampleRate: sampleRate,
		Timestamp:  timestamp,
	}

	// One backing array keeps the planes contiguous.
	backing := make([]float32, channels*frames)
	for c := range channels {
		f.Channels[c] = backing[c*frames : (c+1)*frames : (c+1)*frames]
	}

	return f
}

func (f *Frame) NumChannels() int { return len(f.Channels) }

// NumFrames is the number of samples per channel.
func (f *Frame) NumFrames() int {
	if len(f.Channels) == 0 {
		return 0
	}

	return len(f.Channels[0])
}

// Duration of the frame at its sample rate.
func (f *Frame) Duration() time.Duration {
	if f.SampleRate <= 0 {
		return 0
	}

	return time.Duration(f.NumFrames()) * time.Second / time.Duration(f.SampleRate)
}

// Validate checks that the frame is well formed.
func (f *Frame) Validate() error {
	if f == nil {
		return fmt.Errorf("%w: nil frame", ErrInvalidFrame)
	}

	if f.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidFrame, f.SampleRate)
	}

	if len(f.Channels) == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalidFrame)
	}

	want := len(f.Channels[0])
	for c, ch := range f.Channels {
		if len(ch) != want {
			return fmt.Errorf("%w: channel %d has %d samples, want %d", ErrInvalidFrame, c, len(ch), want)
		}
	}

	return nil
}

// Clone returns a deep copy of f.
func (f *Frame) Clone() *Frame {
	out := NewFrame(f.SampleRate, f.NumChannels(), f.NumFrames(), f.Timestamp)
	for c, ch := range f.Channels {
		copy(out.Channels[c], ch)
	}

	return out
}
