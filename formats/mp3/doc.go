// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 decoding.
//
// This package uses github.com/hajimehoshi/go-mp3, a pure Go decoder, and
// exposes the result as an audio.Source.
//
// # Decoding MP3 Files
//
//	f, _ := os.Open("music.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// # Output Format
//
// MP3 decoder output:
//   - Sample format: float32 in range [-1.0, 1.0)
//   - Channels: always 2; mono files are duplicated into both channels
//   - Sample rate: that of the stream (typically 44.1kHz or 48kHz)
//
// go-mp3 hands out 16-bit little endian bytes. A read that ends inside a
// stereo frame keeps the remainder for the next call, so ReadSamples always
// returns whole frames.
//
// # Background Music
//
// To use an MP3 as the background track of a mix, load it through the
// root package, which downmixes and resamples as asked:
//
//	track, err := bgmix.DecodeTrackFile(formats.NewRegistry(), "music.mp3",
//	    bgmix.WithSampleRate(48000))
//
// # Limitations
//
//   - Decoding only; there is no MP3 encoder
//   - Output is always stereo (use audio.MonoMixer or bgmix.WithMono)
//   - The whole stream is read sequentially; seeking is not exposed
package mp3
