// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer averages all channels of src into one. Used to collapse a stereo
// background bed so every microphone channel hears the same music.
type MonoMixer struct {
	src Source
	tmp []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{src: src}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("close mono source: %w", err)
	}

	return nil
}

// ReadSamples writes up to len(dst) mono samples.
func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	channels := m.src.Channels()
	if len(dst) == 0 {
		return 0, nil
	}
	if channels == 1 {
		return m.src.ReadSamples(dst)
	}

	need := len(dst) * channels
	if cap(m.tmp) < need {
		m.tmp = make([]float32, need)
	}

	n, err := m.src.ReadSamples(m.tmp[:need])
	frames := n / channels
	inv := 1 / float32(channels)

	for f := range frames {
		var sum float32
		for _, s := range m.tmp[f*channels : (f+1)*channels] {
			sum += s
		}
		dst[f] = sum * inv
	}

	return frames, err
}
