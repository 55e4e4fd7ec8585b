// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// FrameSource is the pull side of a processing session.
type FrameSource interface {
	// ReadFrame returns the next frame, or io.EOF when the stream is exhausted.
	ReadFrame(ctx context.Context) (*Frame, error)
	// Cancel tells the producer that no more frames will be read.
	Cancel(reason error)
}

// FrameSink is the push side of a processing session.
type FrameSink interface {
	// WriteFrame delivers one processed frame. A sink that stops its own
	// session from here must pass ctx to the session's Abort.
	WriteFrame(ctx context.Context, f *Frame) error
	// Close is called once after the last frame of a stream that finished normally.
	Close() error
	// Abort is called instead of Close when the stream was cancelled or failed.
	Abort(reason error)
}

// maxEmptyReads bounds how often a Source may return (0, nil) in a row.
const maxEmptyReads = 64

// FrameReader slices an interleaved Source into planar frames of a fixed
// number of samples per channel. The last frame may be shorter.
type FrameReader struct {
	src       Source
	frameSize int
	buf       []float32
	emitted   int64
	done      bool
}

func NewFrameReader(src Source, frameSize int) (*FrameReader, error) {
	if frameSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFrameSize, frameSize)
	}

	if src.Channels() <= 0 || src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrInvalidFrame, src.Channels(), src.SampleRate())
	}

	return &FrameReader{
		src:       src,
		frameSize: frameSize,
		buf:       make([]float32, frameSize*src.Channels()),
	}, nil
}

func (r *FrameReader) ReadFrame(ctx context.Context) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if r.done {
		return nil, io.EOF
	}

	channels := r.src.Channels()
	filled := 0
	empty := 0

	for filled < len(r.buf) {
		n, err := r.src.ReadSamples(r.buf[filled:])
		filled += n

		if errors.Is(err, io.EOF) {
			r.done = true
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read samples: %w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, io.ErrNoProgress
			}
		} else {
			empty = 0
		}
	}

	frames := filled / channels
	if frames == 0 {
		r.done = true
		return nil, io.EOF
	}

	rate := r.src.SampleRate()
	f := NewFrame(rate, channels, frames, r.emitted*1_000_000/int64(rate))

	for i := range frames {
		base := i * channels
		for c := range channels {
			f.Channels[c][i] = r.buf[base+c]
		}
	}

	r.emitted += int64(frames)

	return f, nil
}

// Cancel stops the reader and closes the underlying Source.
func (r *FrameReader) Cancel(error) {
	if r.done {
		return
	}

	r.done = true
	_ = r.src.Close()
}
