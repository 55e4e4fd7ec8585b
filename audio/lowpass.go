// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/ik5/bgmix/utils"
)

// DefaultCutoff is the low-pass cutoff used when none is configured.
const DefaultCutoff = 100.0

// LowPassAlpha is the smoothing factor of a single-pole RC low-pass filter
// with the given cutoff, sampled at sampleRate.
func LowPassAlpha(cutoff float64, sampleRate int) float64 {
	rc := 1.0 / (2 * math.Pi * cutoff)
	dt := 1.0 / float64(sampleRate)

	return dt / (rc + dt)
}

// LowPass is a single-pole low-pass filter over planar frames. It keeps the
// last output value of every channel between calls, so the channel layout
// is fixed by the first frame it sees.
type LowPass struct {
	cutoff float64
	last   []float64
	logger *slog.Logger
}

// NewLowPass builds a filter with the given cutoff in Hz. A nil logger uses
// slog.Default().
func NewLowPass(cutoff float64, logger *slog.Logger) (*LowPass, error) {
	if cutoff <= 0 || math.IsNaN(cutoff) || math.IsInf(cutoff, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCutoff, cutoff)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &LowPass{cutoff: cutoff, logger: logger}, nil
}

// Cutoff returns the cutoff frequency in Hz.
func (lp *LowPass) Cutoff() float64 { return lp.cutoff }

// Reset drops the per-channel state; the next frame starts from silence.
func (lp *LowPass) Reset() {
	lp.last = nil
}

// Process filters every channel of in into a new frame. The first frame
// fixes the channel count; later frames with a different count fail with
// ErrChannelMismatch. NaN samples fail with ErrNonFiniteSample. On error the
// filter state is left as it was before the call.
func (lp *LowPass) Process(in *Frame) (*Frame, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if lp.last == nil {
		lp.logger.Info("low-pass filter attached", "channels", in.NumChannels(), "cutoff_hz", lp.cutoff)
		lp.last = make([]float64, in.NumChannels())
	} else if len(lp.last) != in.NumChannels() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrChannelMismatch, in.NumChannels(), len(lp.last))
	}

	alpha := LowPassAlpha(lp.cutoff, in.SampleRate)
	out := NewFrame(in.SampleRate, in.NumChannels(), in.NumFrames(), in.Timestamp)
	next := make([]float64, len(lp.last))

	for c, samples := range in.Channels {
		last := lp.last[c]
		dst := out.Channels[c]

		for i, s := range samples {
			if math.IsNaN(float64(s)) {
				return nil, fmt.Errorf("%w: channel %d sample %d", ErrNonFiniteSample, c, i)
			}

			// ±Inf is pinned like the mixer does, so the state stays finite.
			x := float64(utils.Saturate(float64(s)))
			last += alpha * (x - last)
			dst[i] = float32(last)
		}

		next[c] = last
	}

	// State only moves once the whole frame went through.
	copy(lp.last, next)

	return out, nil
}
