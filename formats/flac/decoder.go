// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/bgmix/audio"
)

var ErrUnsupportedStream = errors.New("unsupported FLAC stream")

// frameParser is the part of flac.Stream the source reads from.
type frameParser interface {
	ParseNext() (*frame.Frame, error)
}

type source struct {
	dec        frameParser
	closer     io.Closer
	sampleRate int
	channels   int
	scale      float32

	// pending holds decoded interleaved samples not yet handed out.
	pending []float32
	eof     bool
}

func newSource(dec frameParser, closer io.Closer, sampleRate, channels, bitDepth int) (*source, error) {
	if sampleRate <= 0 || channels <= 0 || bitDepth < 4 || bitDepth > 32 {
		return nil, fmt.Errorf("%w: %d channels, %d Hz, %d bits", ErrUnsupportedStream, channels, sampleRate, bitDepth)
	}

	return &source{
		dec:        dec,
		closer:     closer,
		sampleRate: sampleRate,
		channels:   channels,
		scale:      1 / float32(int64(1)<<(bitDepth-1)),
	}, nil
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }

func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}

	return s.closer.Close()
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	written := 0
	for written < len(dst) {
		if len(s.pending) == 0 {
			if s.eof {
				break
			}
			if err := s.decodeFrame(); err != nil {
				return written, err
			}
			continue
		}

		n := copy(dst[written:], s.pending)
		s.pending = s.pending[n:]
		written += n
	}

	if written == 0 && s.eof && len(dst) > 0 {
		return 0, io.EOF
	}

	return written, nil
}

func (s *source) decodeFrame() error {
	f, err := s.dec.ParseNext()
	if errors.Is(err, io.EOF) {
		s.eof = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("decode flac frame: %w", err)
	}

	if len(f.Subframes) != s.channels {
		return fmt.Errorf("%w: frame has %d channels, want %d", ErrUnsupportedStream, len(f.Subframes), s.channels)
	}

	size := int(f.BlockSize)
	buf := make([]float32, size*s.channels)

	for c, sub := range f.Subframes {
		for i, v := range sub.Samples[:size] {
			buf[i*s.channels+c] = float32(v) * s.scale
		}
	}

	s.pending = buf

	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("open flac: %w", err)
	}

	info := stream.Info
	src, err := newSource(stream, stream, int(info.SampleRate), int(info.NChannels), int(info.BitsPerSample))
	if err != nil {
		_ = stream.Close()
		return nil, err
	}

	return src, nil
}
