// SPDX-License-Identifier: EPL-2.0

package bgmix

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/bgmix/audio"
)

const (
	defaultBufferSize = 4096
	maxEmptyReads     = 64
)

type loadOptions struct {
	mono       bool
	sampleRate int
	bufSize    int
}

// LoadOption tunes LoadTrack.
type LoadOption func(*loadOptions)

// WithMono averages all channels of the music into one, so every microphone
// channel hears the same bed.
func WithMono() LoadOption {
	return func(o *loadOptions) { o.mono = true }
}

// WithSampleRate resamples the music to hz. Zero keeps the source rate.
func WithSampleRate(hz int) LoadOption {
	return func(o *loadOptions) { o.sampleRate = hz }
}

// WithBufferSize sets how many samples are read per call.
func WithBufferSize(n int) LoadOption {
	return func(o *loadOptions) { o.bufSize = n }
}

// LoadTrack drains src into a background track. It does not close src.
//
// The pipeline is src -> mono mixer -> resampler, each stage only added when
// asked for. Downmixing first keeps the resampler on a single channel.
func LoadTrack(src audio.Source, opts ...LoadOption) (*audio.Track, error) {
	o := loadOptions{bufSize: defaultBufferSize}
	for _, opt := range opts {
		opt(&o)
	}

	if o.sampleRate < 0 {
		return nil, fmt.Errorf("%w: %d", audio.ErrInvalidRate, o.sampleRate)
	}

	s := src
	if o.mono && s.Channels() > 1 {
		s = audio.NewMonoMixer(s)
	}
	if o.sampleRate > 0 && o.sampleRate != s.SampleRate() {
		s = audio.NewResampler(s, o.sampleRate)
	}

	channels := s.Channels()
	rate := s.SampleRate()
	if channels <= 0 || rate <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", audio.ErrInvalidTrack, channels, rate)
	}

	size := max(o.bufSize/channels, 1) * channels
	buf := make([]float32, size)
	data := make([][]float32, channels)
	var carry []float32

	for empty := 0; ; {
		n, err := s.ReadSamples(buf)

		if n > 0 {
			empty = 0

			chunk := buf[:n]
			if len(carry) > 0 {
				chunk = append(carry, chunk...)
				carry = nil
			}

			whole := len(chunk) - len(chunk)%channels
			for i, v := range chunk[:whole] {
				data[i%channels] = append(data[i%channels], v)
			}
			if whole < len(chunk) {
				carry = append([]float32(nil), chunk[whole:]...)
			}
		} else if err == nil {
			empty++
			if empty >= maxEmptyReads {
				return nil, fmt.Errorf("load track: %w", io.ErrNoProgress)
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("load track: %w", err)
		}
	}

	return audio.NewTrack(rate, data)
}

// DecodeTrackFile opens path, decodes it with the decoder registered for its
// extension and loads it as a track.
func DecodeTrackFile(reg *audio.Registry, path string, opts ...LoadOption) (*audio.Track, error) {
	dec, err := reg.ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open track: %w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer src.Close()

	return LoadTrack(src, opts...)
}
