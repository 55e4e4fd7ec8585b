// SPDX-License-Identifier: EPL-2.0

// Package bgmix mixes a looping background music bed into a live
// microphone stream.
//
// The work is split over a few packages:
//
//   - audio holds the frame and track types, the BackgroundMixer and the
//     LowPass filter, and the interleaved Source plumbing (resampler, mono
//     mixer, decoder registry).
//   - session runs a mixer over a FrameSource/FrameSink pair on its own
//     goroutine and handles SetTrack, Start and Abort.
//   - formats/... decode WAV, MP3, Ogg Vorbis, AIFF and FLAC, and write WAV.
//
// This package glues decoding to the mixer: it turns a decoded file into an
// audio.Track ready to be installed on a session.
//
// # Quick Start
//
//	reg := formats.NewRegistry()
//	track, err := bgmix.DecodeTrackFile(reg, "bed.mp3",
//		bgmix.WithSampleRate(48000))
//
//	s, _ := session.New()
//	_ = s.SetBackgroundTrack(ctx, track)
//	_ = s.Start(ctx, micSource, sink)
//	err = s.Wait(ctx)
//
// # Mixing
//
// Each output sample is 0.7 times the microphone sample plus 0.3 times the
// music sample under the cursor. Microphone channel c reads music channel
// c modulo the number of music channels, and the cursor wraps at the end of
// the track. With no track installed frames pass through untouched.
package bgmix
