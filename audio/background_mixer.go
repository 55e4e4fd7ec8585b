// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/ik5/bgmix/utils"
)

// Fixed mix coefficients. They are not normalized against clipping: a mic
// and a bed both at full scale sum to full scale.
const (
	MicGain   = 0.7
	MusicGain = 0.3
)

// BackgroundMixer blends each input frame with a looping background track.
//
// For input channel c and sample i the output is
//
//	in[c][i]*MicGain + track.Channel(c)[(cursor+i) % track.Len()]*MusicGain
//
// after which the cursor advances by the frame's length, modulo the track
// length. Without a track the input is copied unchanged (no gain applied).
//
// A BackgroundMixer is not safe for concurrent use.
type BackgroundMixer struct {
	track  *Track
	cursor int
}

// NewBackgroundMixer returns a mixer without a track, which passes frames
// through unchanged until SetTrack is called.
func NewBackgroundMixer() *BackgroundMixer {
	return &BackgroundMixer{}
}

// SetTrack replaces the background track and rewinds the cursor. A nil track
// switches the mixer to passthrough.
func (m *BackgroundMixer) SetTrack(t *Track) {
	m.track = t
	m.cursor = 0
}

func (m *BackgroundMixer) Track() *Track { return m.track }

// Cursor is the read offset into the track for the next frame.
func (m *BackgroundMixer) Cursor() int { return m.cursor }

// Process mixes in with the track. in is validated first; on any error the
// cursor is left untouched.
func (m *BackgroundMixer) Process(in *Frame) (*Frame, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if m.track == nil {
		return in.Clone(), nil
	}

	frames := in.NumFrames()
	length := m.track.Len()
	out := NewFrame(in.SampleRate, in.NumChannels(), frames, in.Timestamp)

	for c, samples := range in.Channels {
		music := m.track.Channel(c)
		dst := out.Channels[c]
		idx := m.cursor

		for i, s := range samples {
			if math.IsNaN(float64(s)) {
				return nil, fmt.Errorf("%w: channel %d sample %d", ErrNonFiniteSample, c, i)
			}

			dst[i] = utils.Saturate(float64(s)*MicGain + float64(music[idx])*MusicGain)

			idx++
			if idx == length {
				idx = 0
			}
		}
	}

	m.cursor = (m.cursor + frames) % length

	return out, nil
}
