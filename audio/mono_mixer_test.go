// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"
)

func TestMonoMixer_AveragesChannels(t *testing.T) {
	t.Parallel()

	src := newSliceSource(8000, 3, []float32{0.3, 0.6, 0.9, -0.3, 0, 0.3})
	m := NewMonoMixer(src)

	if m.Channels() != 1 || m.SampleRate() != 8000 {
		t.Fatalf("MonoMixer = %d ch %d Hz, want 1 ch 8000 Hz", m.Channels(), m.SampleRate())
	}

	buf := make([]float32, 4)
	n, err := m.ReadSamples(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		t.Fatalf("ReadSamples() error = %v", err)
	}

	if n != 2 || !approxEqual(buf[0], 0.6, 1e-6) || !approxEqual(buf[1], 0, 1e-6) {
		t.Errorf("ReadSamples() = %d %v, want 2 [0.6 0]", n, buf[:n])
	}
}

func TestMonoMixer_MonoPassthrough(t *testing.T) {
	t.Parallel()

	m := NewMonoMixer(newSliceSource(8000, 1, []float32{0.1, 0.2}))

	buf := make([]float32, 2)
	if n, _ := m.ReadSamples(buf); n != 2 || buf[1] != 0.2 {
		t.Errorf("ReadSamples() = %d %v, want 2 [0.1 0.2]", n, buf)
	}

	if n, err := m.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}
}
