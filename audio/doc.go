// SPDX-License-Identifier: EPL-2.0

// Package audio holds the processing core of bgmix.
//
// # Frames and tracks
//
// Live audio moves through the package as planar Frames: one []float32 per
// channel, all the same length, plus a sample rate and a timestamp in
// microseconds. A Track is a decoded background buffer that is looped
// underneath the live signal.
//
// # Mixing
//
// BackgroundMixer mixes every input frame with the current Track:
//
//	mixer := audio.NewBackgroundMixer()
//	mixer.SetTrack(track)
//	out, err := mixer.Process(frame)
//
// Each output sample is in*MicGain + music*MusicGain (0.7 and 0.3). The
// music index wraps around the end of the track, and input channels beyond
// the track's channel count reuse track channels modulo its channel count.
// Without a track, frames are copied through unchanged.
//
// # Filtering
//
// LowPass is a single-pole RC low-pass filter that keeps per-channel state
// between frames:
//
//	lp, _ := audio.NewLowPass(audio.DefaultCutoff, logger)
//	out, err := lp.Process(frame)
//
// Transforms compose with Chain:
//
//	chain := audio.Chain{mixer, lp}
//
// # Streams
//
// FrameSource and FrameSink are the pull and push ends of a processing
// session. FrameReader turns any interleaved Source into a FrameSource.
//
// # Interleaved sources
//
// Format decoders produce Sources of interleaved float32 samples in
// [-1.0, 1.0]. Resampler and MonoMixer wrap Sources, and are used when
// preparing a background track:
//
//	src, _ := mp3.Decoder{}.Decode(file)
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 48000))
//
// # Errors
//
// Malformed frames fail with ErrInvalidFrame, bad track data with
// ErrInvalidTrack and NaN input with ErrNonFiniteSample. Infinite input and
// mixed values that overflow float32 saturate to ±math.MaxFloat32, in both
// the mixer and the low-pass filter.
package audio
