// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
	"time"
)

// Track is a decoded background buffer that the mixer loops over.
// It is immutable once built; load a new Track to replace it.
type Track struct {
	channels   [][]float32
	sampleRate int
}

// NewTrack copies channelData into a new Track. Every channel must hold the
// same, non-zero number of finite samples.
func NewTrack(sampleRate int, channelData [][]float32) (*Track, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidTrack, sampleRate)
	}

	if len(channelData) == 0 {
		return nil, fmt.Errorf("%w: no channels", ErrInvalidTrack)
	}

	length := len(channelData[0])
	if length == 0 {
		return nil, fmt.Errorf("%w: empty channels", ErrInvalidTrack)
	}

	t := &Track{
		channels:   make([][]float32, len(channelData)),
		sampleRate: sampleRate,
	}

	for c, ch := range channelData {
		if len(ch) != length {
			return nil, fmt.Errorf("%w: channel %d has %d samples, want %d", ErrInvalidTrack, c, len(ch), length)
		}

		for i, v := range ch {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				return nil, fmt.Errorf("%w: channel %d sample %d is %v", ErrInvalidTrack, c, i, v)
			}
		}

		t.channels[c] = append([]float32(nil), ch...)
	}

	return t, nil
}

func (t *Track) SampleRate() int  { return t.sampleRate }
func (t *Track) NumChannels() int { return len(t.channels) }

// Len is the number of samples per channel.
func (t *Track) Len() int { return len(t.channels[0]) }

// Channel returns the channel that input channel c mixes with. Inputs with
// more channels than the track wrap around.
func (t *Track) Channel(c int) []float32 {
	return t.channels[c%len(t.channels)]
}

func (t *Track) Duration() time.Duration {
	return time.Duration(t.Len()) * time.Second / time.Duration(t.sampleRate)
}
