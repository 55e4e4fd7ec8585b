// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrInvalidFrame is returned for frames with no channels, ragged channels
	// or a non-positive sample rate.
	ErrInvalidFrame = errors.New("invalid audio frame")

	// ErrInvalidTrack is returned when a background track cannot be built
	// from the given channel data.
	ErrInvalidTrack = errors.New("invalid background track")

	// ErrNonFiniteSample is returned when an input sample is NaN. Infinite
	// samples are saturated to ±math.MaxFloat32 instead.
	ErrNonFiniteSample = errors.New("non-finite sample")

	// ErrChannelMismatch is returned by stateful transforms when the channel
	// layout changes between frames.
	ErrChannelMismatch = errors.New("channel count changed between frames")

	ErrInvalidCutoff    = errors.New("cutoff frequency must be positive")
	ErrInvalidFrameSize = errors.New("frame size must be positive")
	ErrInvalidRate      = errors.New("sample rate must be positive")

	ErrUnsupportedFormat = errors.New("unsupported audio format")
)
