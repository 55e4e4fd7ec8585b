// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/bgmix/audio"
)

// mockOggReader simulates oggvorbis.Reader, returning at most chunk values per Read.
type mockOggReader struct {
	rate     int
	channels int
	data     []float32
	off      int
	chunk    int
	err      error
}

func (m *mockOggReader) SampleRate() int { return m.rate }
func (m *mockOggReader) Channels() int   { return m.channels }

func (m *mockOggReader) Read(p []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.off >= len(m.data) {
		return 0, io.EOF
	}

	end := min(len(m.data), m.off+len(p))
	if m.chunk > 0 {
		end = min(end, m.off+m.chunk)
	}

	n := copy(p, m.data[m.off:end])
	m.off += n

	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, in := range map[string][]byte{
		"text":  []byte("This is not Ogg Vorbis data"),
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

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	data := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}
	src := &source{dec: &mockOggReader{rate: 48000, channels: 2, data: data, chunk: 4}}

	if src.SampleRate() != 48000 || src.Channels() != 2 {
		t.Fatalf("source = %d Hz %d ch", src.SampleRate(), src.Channels())
	}

	var got []float32
	buf := make([]float32, 8)

	for {
		n, err := src.ReadSamples(buf)
		got = append(got, buf[:n]...)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if len(got) != len(data) {
		t.Fatalf("got %v, want %v", got, data)
	}
	for i := range data {
		if got[i] != data[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], data[i])
		}
	}
}

func TestSource_Errors(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockOggReader{rate: 48000, channels: 2}}
	if _, err := src.ReadSamples(make([]float32, 3)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(3) error = %v, want ErrInvalidDstSize", err)
	}
	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v", n, err)
	}

	boom := errors.New("bad packet")
	src = &source{dec: &mockOggReader{rate: 48000, channels: 2, err: boom}}
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}
