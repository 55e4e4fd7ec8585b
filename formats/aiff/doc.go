// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF decoding.
//
// This package uses github.com/go-audio/aiff to parse the container and
// read integer PCM, which is normalized to float32.
//
// # Supported Formats
//
// The decoder supports:
//   - Uncompressed AIFF
//   - Bit depths of 8, 16, 24 and 32
//   - Any channel count and sample rate found in the COMM chunk
//
// AIFF-C compressed variants are not supported. AIFF stores signed samples
// at every depth, unlike 8-bit WAV.
//
// # Decoding AIFF Files
//
//	f, _ := os.Open("music.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//
// The go-audio parser needs to seek. Readers that cannot seek are buffered
// in memory before parsing.
//
// # Errors
//
//   - ErrNotAiffFile: the input is not a valid AIFF container
//   - ErrUnsupportedBitDepth: a depth other than 8, 16, 24 or 32
//   - ErrUnsupportedAiffLayout: missing channel count or sample rate
package aiff
