// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/bgmix/audio"
	"github.com/ik5/bgmix/utils"
)

// go-mp3 always produces 16-bit little-endian stereo.
const (
	channels       = 2
	bytesPerSample = 2
)

// mp3Reader is the part of gomp3.Decoder the source reads from.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec  mp3Reader
	buf  []byte
	tail []byte // bytes of a sample split across reads
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	want := len(dst) * bytesPerSample
	if cap(s.buf) < want {
		s.buf = make([]byte, want)
	}
	b := s.buf[:want]

	have := copy(b, s.tail)
	s.tail = s.tail[:0]

	n, err := s.dec.Read(b[have:])
	have += n

	frameBytes := channels * bytesPerSample
	whole := have - have%frameBytes
	s.tail = append(s.tail, b[whole:have]...)

	for i := range whole / bytesPerSample {
		v := int16(binary.LittleEndian.Uint16(b[2*i:]))
		dst[i] = utils.PCMToFloat32(int(v), 16)
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return whole / bytesPerSample, fmt.Errorf("decode mp3: %w", err)
	}

	return whole / bytesPerSample, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("open mp3: %w", err)
	}

	return &source{dec: dec, buf: make([]byte, 8192)}, nil
}
