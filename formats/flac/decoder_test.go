// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/mewkiz/flac/frame"

	"github.com/ik5/bgmix/audio"
)

// mockParser hands out prepared frames.
type mockParser struct {
	frames []*frame.Frame
	err    error
}

func (m *mockParser) ParseNext() (*frame.Frame, error) {
	if len(m.frames) == 0 {
		if m.err != nil {
			return nil, m.err
		}
		return nil, io.EOF
	}

	f := m.frames[0]
	m.frames = m.frames[1:]

	return f, nil
}

type closeRecorder struct{ closed bool }

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func stereoFrame(left, right []int32) *frame.Frame {
	f := &frame.Frame{
		Subframes: []*frame.Subframe{
			{Samples: left},
			{Samples: right},
		},
	}
	f.BlockSize = uint16(len(left))

	return f
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, in := range map[string][]byte{
		"text":  []byte("This is not FLAC data"),
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(in)); err == nil {
				t.Error("Decode() error = nil, want error")
			}
		})
	}
}

func TestNewSource_Validates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
		depth    int
	}{
		{name: "no rate", channels: 2, depth: 16},
		{name: "no channels", rate: 44100, depth: 16},
		{name: "depth too small", rate: 44100, channels: 2, depth: 2},
		{name: "depth too large", rate: 44100, channels: 2, depth: 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := newSource(&mockParser{}, nil, tt.rate, tt.channels, tt.depth); !errors.Is(err, ErrUnsupportedStream) {
				t.Errorf("newSource() error = %v, want ErrUnsupportedStream", err)
			}
		})
	}
}

func TestSource_ReadSamplesAcrossFrames(t *testing.T) {
	t.Parallel()

	parser := &mockParser{frames: []*frame.Frame{
		stereoFrame([]int32{0, 16384, -32768}, []int32{8192, -8192, 0}),
		stereoFrame([]int32{-16384}, []int32{16384}),
	}}
	closer := &closeRecorder{}

	src, err := newSource(parser, closer, 44100, 2, 16)
	if err != nil {
		t.Fatalf("newSource() error = %v", err)
	}

	var got []float32
	buf := make([]float32, 4)

	for range 100 {
		n, err := src.ReadSamples(buf)
		got = append(got, buf[:n]...)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	want := []float32{0, 0.25, 0.5, -0.25, -1, 0, -0.5, 0.5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}

	if err := src.Close(); err != nil || !closer.closed {
		t.Errorf("Close() = %v, closed = %v", err, closer.closed)
	}
}

func TestSource_Errors(t *testing.T) {
	t.Parallel()

	src, _ := newSource(&mockParser{}, nil, 8000, 2, 16)
	if _, err := src.ReadSamples(make([]float32, 3)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(3) error = %v, want ErrInvalidDstSize", err)
	}

	boom := errors.New("crc mismatch")
	src, _ = newSource(&mockParser{err: boom}, nil, 8000, 2, 16)
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}

	mono := &frame.Frame{Subframes: []*frame.Subframe{{Samples: []int32{1}}}}
	mono.BlockSize = 1
	src, _ = newSource(&mockParser{frames: []*frame.Frame{mono}}, nil, 8000, 2, 16)
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, ErrUnsupportedStream) {
		t.Errorf("ReadSamples() error = %v, want ErrUnsupportedStream", err)
	}
}
