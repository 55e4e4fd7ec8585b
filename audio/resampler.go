// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/bgmix/utils"
)

// Resampler converts an interleaved Source to another sample rate with
// Catmull-Rom interpolation. When downsampling, source frames first go
// through a one-pole low-pass at the destination Nyquist frequency.
//
// Background tracks are resampled once at load time so the mixer can step
// through them one sample per microphone sample.
type Resampler struct {
	src      Source
	channels int
	dstRate  int
	step     float64 // source frames per output frame

	// hist[1] and hist[2] bracket the current position; hist[0] and hist[3]
	// are the outer control points.
	hist  [4][]float32
	valid [4]bool
	pos   float64

	primed bool
	eof    bool
	frame  []float32

	filter bool
	alpha  float32
	state  []float32
	warm   bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	srcRate := src.SampleRate()

	r := &Resampler{
		src:      src,
		channels: channels,
		dstRate:  dstRate,
		step:     float64(srcRate) / float64(dstRate),
		frame:    make([]float32, channels),
		state:    make([]float32, channels),
	}

	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	if srcRate > dstRate {
		r.filter = true
		r.alpha = float32(LowPassAlpha(float64(dstRate)/2, srcRate))
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("close resampled source: %w", err)
	}

	return nil
}

// pull reads the next source frame into r.frame. It reports false once the
// source is exhausted.
func (r *Resampler) pull() (bool, error) {
	if r.eof {
		return false, nil
	}

	got := 0
	for empty := 0; got < r.channels; {
		n, err := r.src.ReadSamples(r.frame[got:])
		got += n

		if errors.Is(err, io.EOF) {
			r.eof = true
			break
		}
		if err != nil {
			return false, fmt.Errorf("resample read: %w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return false, io.ErrNoProgress
			}
		}
	}

	if got < r.channels {
		r.eof = true
		return false, nil
	}

	if r.filter {
		if !r.warm {
			copy(r.state, r.frame)
			r.warm = true
		}
		for c, x := range r.frame {
			r.state[c] += r.alpha * (x - r.state[c])
			r.frame[c] = r.state[c]
		}
	}

	return true, nil
}

// advance shifts the history window one source frame forward.
func (r *Resampler) advance() error {
	r.hist[0], r.hist[1], r.hist[2], r.hist[3] = r.hist[1], r.hist[2], r.hist[3], r.hist[0]
	r.valid[0], r.valid[1], r.valid[2] = r.valid[1], r.valid[2], r.valid[3]

	ok, err := r.pull()
	if err != nil {
		return err
	}

	if ok {
		copy(r.hist[3], r.frame)
	} else {
		copy(r.hist[3], r.hist[2])
	}
	r.valid[3] = ok

	return nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.pull()
	if err != nil || !ok {
		return err
	}

	copy(r.hist[0], r.frame)
	copy(r.hist[1], r.frame)
	r.valid[1] = true

	for i := 2; i < 4; i++ {
		ok, err = r.pull()
		if err != nil {
			return err
		}

		if ok {
			copy(r.hist[i], r.frame)
		} else {
			copy(r.hist[i], r.hist[i-1])
		}
		r.valid[i] = ok
	}

	return nil
}

// ReadSamples writes resampled interleaved samples; len(dst) must be a
// multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if r.dstRate == r.src.SampleRate() {
		return r.src.ReadSamples(dst)
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	for written < len(dst) {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return written, err
			}
		}

		if !r.valid[1] {
			return written, io.EOF
		}

		x := float32(r.pos)
		for c := range r.channels {
			dst[written+c] = utils.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}

		written += r.channels
		r.pos += r.step
	}

	return written, nil
}
