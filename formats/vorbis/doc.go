// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis decoding.
//
// Decoding is done by github.com/jfreymuth/oggvorbis. The decoder already
// produces interleaved float32 in [-1, 1], so samples are handed through
// without conversion.
//
// # Decoding Ogg Files
//
//	f, _ := os.Open("music.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 4096) // a multiple of src.Channels()
//	n, err := src.ReadSamples(buf)
//
// ReadSamples rejects buffers that do not hold a whole number of frames
// with audio.ErrInvalidDstSize.
//
// # Output Format
//
//   - Sample format: float32, interleaved
//   - Channels: as encoded
//   - Sample rate: as encoded
//
// # Registry Keys
//
// formats.NewRegistry maps both "ogg" and "oga" to this decoder.
package vorbis
