// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/bgmix/audio"
	"github.com/ik5/bgmix/utils"
)

// FrameWriter is an audio.FrameSink that encodes frames as 16-bit PCM WAV.
// Both Close and Abort finalize the header, so an aborted stream still
// leaves a playable file holding everything written so far.
type FrameWriter struct {
	enc    *wav.Encoder
	closer io.Closer

	sampleRate int
	channels   int
	buf        *goaudio.IntBuffer

	frames   int64
	finished bool
	reason   error
}

func NewFrameWriter(w io.WriteSeeker, sampleRate, channels int) (*FrameWriter, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrFormatMismatch, channels, sampleRate)
	}

	return &FrameWriter{
		enc:        wav.NewEncoder(w, sampleRate, 16, channels, formatPCM),
		sampleRate: sampleRate,
		channels:   channels,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
	}, nil
}

// Create opens path for writing. The file is closed together with the writer.
func Create(path string, sampleRate, channels int) (*FrameWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create wav: %w", err)
	}

	w, err := NewFrameWriter(f, sampleRate, channels)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	w.closer = f

	return w, nil
}

func (w *FrameWriter) WriteFrame(ctx context.Context, f *audio.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.finished {
		return ErrWriterClosed
	}
	if err := f.Validate(); err != nil {
		return err
	}
	if f.SampleRate != w.sampleRate || f.NumChannels() != w.channels {
		return fmt.Errorf("%w: got %d channels at %d Hz, want %d at %d Hz",
			ErrFormatMismatch, f.NumChannels(), f.SampleRate, w.channels, w.sampleRate)
	}

	n := f.NumFrames()
	need := n * w.channels
	if cap(w.buf.Data) < need {
		w.buf.Data = make([]int, need)
	}
	w.buf.Data = w.buf.Data[:need]

	for c, samples := range f.Channels {
		for i, s := range samples {
			w.buf.Data[i*w.channels+c] = int(utils.Float32ToInt16(s))
		}
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	w.frames += int64(n)

	return nil
}

// Close finalizes the file.
func (w *FrameWriter) Close() error {
	return w.finish()
}

// Abort records reason and finalizes whatever was written.
func (w *FrameWriter) Abort(reason error) {
	if w.finished {
		return
	}

	w.reason = reason
	_ = w.finish()
}

// Frames is the number of samples per channel written so far.
func (w *FrameWriter) Frames() int64 { return w.frames }

// AbortReason is the reason passed to Abort, or nil.
func (w *FrameWriter) AbortReason() error { return w.reason }

func (w *FrameWriter) finish() error {
	if w.finished {
		return nil
	}
	w.finished = true

	var err error

	// The encoder only emits its header on the first Write.
	if w.frames == 0 {
		w.buf.Data = w.buf.Data[:0]
		err = w.enc.Write(w.buf)
	}

	if err == nil {
		err = w.enc.Close()
	}

	if w.closer != nil {
		err = errors.Join(err, w.closer.Close())
	}

	if err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}

	return nil
}
