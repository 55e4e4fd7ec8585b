// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files through github.com/go-audio/wav.
//
// # Decoding WAV Files
//
// Decoder accepts linear PCM and returns an audio.Source with samples
// normalized to [-1, 1):
//
//	f, _ := os.Open("music.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//
// Supported input:
//   - Format: PCM (format tag 1); compressed or float WAV is rejected
//   - Bit depths: 8 (unsigned, offset 128), 16, 24 and 32
//   - Any channel count and sample rate
//
// Inputs that cannot seek are buffered in memory first, since the RIFF
// parser needs to seek.
//
// # Writing WAV Files
//
// FrameWriter is the other direction: an audio.FrameSink that encodes
// planar frames as 16-bit PCM. It is what the bgmix CLI writes its output
// with.
//
//	w, err := wav.Create("mixed.wav", 48000, 2)
//	if err != nil {
//	    // Handle error
//	}
//	err = w.WriteFrame(ctx, frame)
//	err = w.Close()
//
// Every frame must match the rate and channel count given at creation
// (ErrFormatMismatch). Samples are clamped to the int16 range.
//
// Both Close and Abort finalize the RIFF header, so a stream that was
// cancelled half way still leaves a playable file with the frames written
// so far. A writer that never received a frame produces a valid empty file.
package wav
