// SPDX-License-Identifier: EPL-2.0

// Package flac provides FLAC decoding with github.com/mewkiz/flac.
//
// # Decoding FLAC Files
//
//	f, _ := os.Open("music.flac")
//	src, err := flac.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//	defer src.Close()
//
// Any bit depth the format allows (4 to 32) is normalized to [-1, 1).
// FLAC frames are decoded one at a time; a frame larger than the caller's
// buffer is handed out over several reads, so the buffer size has no
// relation to the encoder's block size.
//
// Streams whose channel count, sample rate or depth is out of range are
// rejected with ErrUnsupportedStream, as is a frame whose channel count
// differs from the stream header.
package flac
