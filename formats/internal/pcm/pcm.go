// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio style integer decoders to audio.Source.
package pcm

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/bgmix/audio"
	"github.com/ik5/bgmix/utils"
)

// BufferReader is the subset of the go-audio wav and aiff decoders the
// Source needs.
type BufferReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source reads integer PCM from a BufferReader and normalizes it to float32.
type Source struct {
	dec        BufferReader
	sampleRate int
	channels   int
	bitDepth   int
	unsigned   bool
	buf        *goaudio.IntBuffer
	raw        []int
	pending    []int // samples of an incomplete frame from the last read
	done       bool
}

// NewSource wraps dec. Set unsigned for 8-bit WAV data, which is stored
// with a 128 offset.
func NewSource(dec BufferReader, sampleRate, channels, bitDepth int, unsigned bool) *Source {
	return &Source{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
		unsigned:   unsigned && bitDepth == 8,
		pending:    make([]int, 0, channels),
	}
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if s.done {
		return 0, io.EOF
	}

	if cap(s.raw) < len(dst) {
		s.raw = make([]int, len(dst))
	}
	if s.buf == nil {
		s.buf = &goaudio.IntBuffer{Format: s.dec.Format()}
	}

	// len(dst) holds at least one whole frame, so the carry never fills it.
	carry := copy(s.raw, s.pending)
	s.buf.Data = s.raw[carry:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil {
		return 0, fmt.Errorf("read pcm: %w", err)
	}
	if n == 0 {
		// An incomplete frame at the end of the data is dropped.
		s.done = true
		s.pending = s.pending[:0]
		return 0, io.EOF
	}

	total := carry + n
	whole := total - total%s.channels

	for i, v := range s.raw[:whole] {
		if s.unsigned {
			v -= 128
		}
		dst[i] = utils.PCMToFloat32(v, s.bitDepth)
	}

	s.pending = append(s.pending[:0], s.raw[whole:total]...)

	return whole, nil
}

// Seekable returns r as an io.ReadSeeker, buffering it in memory when it
// cannot seek on its own.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffer input: %w", err)
	}

	return bytes.NewReader(data), nil
}
