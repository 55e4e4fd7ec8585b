// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/bgmix/audio"
	"github.com/ik5/bgmix/formats/wav"
)

// Example_roundTrip writes a frame to disk and decodes it again.
func Example_roundTrip() {
	dir, err := os.MkdirTemp("", "wav-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "tone.wav")

	w, err := wav.Create(path, 16000, 1)
	if err != nil {
		fmt.Println(err)
		return
	}

	frame := audio.NewFrame(16000, 1, 160, 0)
	_ = w.WriteFrame(context.Background(), frame)
	_ = w.Close()

	f, _ := os.Open(path)
	defer f.Close()

	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		fmt.Println(err)
		return
	}

	buf := make([]float32, 512)
	n, _ := src.ReadSamples(buf)

	fmt.Printf("%d Hz, %d channel(s), %d samples\n", src.SampleRate(), src.Channels(), n)
	// Output: 16000 Hz, 1 channel(s), 160 samples
}
