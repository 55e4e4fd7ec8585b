// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
)

// sliceSource serves interleaved samples from memory.
type sliceSource struct {
	rate     int
	channels int
	data     []float32
	off      int
	closed   bool
}

func newSliceSource(rate, channels int, data []float32) *sliceSource {
	return &sliceSource{rate: rate, channels: channels, data: data}
}

// constantSource returns frames*channels copies of v.
func constantSource(rate, channels, frames int, v float32) *sliceSource {
	data := make([]float32, frames*channels)
	for i := range data {
		data[i] = v
	}

	return newSliceSource(rate, channels, data)
}

func (s *sliceSource) SampleRate() int { return s.rate }
func (s *sliceSource) Channels() int   { return s.channels }

func (s *sliceSource) Close() error {
	s.closed = true
	return nil
}

func (s *sliceSource) ReadSamples(dst []float32) (int, error) {
	if s.off >= len(s.data) {
		return 0, io.EOF
	}

	n := copy(dst, s.data[s.off:])
	s.off += n

	if s.off >= len(s.data) {
		return n, io.EOF
	}

	return n, nil
}

// filledFrame builds a frame where every channel holds frames copies of v.
func filledFrame(rate, channels, frames int, v float32) *Frame {
	f := NewFrame(rate, channels, frames, 0)
	for _, ch := range f.Channels {
		for i := range ch {
			ch[i] = v
		}
	}

	return f
}

// rampTrack builds a track whose channel c sample i is c*1000+i, so tests
// can tell exactly which music sample was picked.
func rampTrack(rate, channels, length int) *Track {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, length)
		for i := range data[c] {
			data[c][i] = float32(c*1000 + i)
		}
	}

	t, err := NewTrack(rate, data)
	if err != nil {
		panic(err)
	}

	return t
}

func approxEqual(a, b float32, eps float64) bool {
	return math.Abs(float64(a)-float64(b)) <= eps
}
