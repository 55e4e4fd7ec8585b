// SPDX-License-Identifier: EPL-2.0

// Package session runs the background mixer over a live frame stream.
//
// A Session owns one BackgroundMixer and an optional LowPass. Commands are
// delivered through Dispatch:
//
//	SetTrack{Track}        install or replace the background music
//	Start{Source, Sink}    begin pulling frames from Source into Sink
//	Abort{}                stop the running pipeline at the next frame boundary
//
// SetBackgroundTrack, Start and Abort are shorthands for the same commands.
//
// # Lifecycle
//
//	Idle -> Configured -> Running -> Stopped | Aborted | Errored
//
// Any state but Closed accepts SetTrack. Start is refused only while
// Running, so a finished session can be started again on new endpoints.
// Close aborts a running pipeline, waits for it and moves to Closed, after
// which every command fails with ErrClosed.
//
// # Cancellation
//
// The pipeline runs on its own goroutine. It checks for cancellation before
// each pull and again before each push, so once Abort returns no further
// frame reaches the sink. Normal end of input closes the sink; an abort or a
// failure cancels the source and aborts the sink instead.
//
// A sink may stop its own session from inside WriteFrame by calling Abort
// with the context WriteFrame received. The frame being written still
// counts; nothing after it is delivered.
//
// # Usage
//
//	s, err := session.New(session.WithLowPass(audio.DefaultCutoff))
//	if err != nil {
//	    // Handle error
//	}
//	defer s.Close()
//
//	reader, _ := audio.NewFrameReader(mic, 480)
//	_ = s.SetBackgroundTrack(ctx, track)
//	_ = s.Start(ctx, reader, sink)
//
//	// Later, from any goroutine:
//	_ = s.Abort(ctx)
//	err = s.Wait(ctx) // nil for a stopped or aborted run
//
// Failures inside the mixer or filter are reported by Wait as a
// *ProcessingError carrying the index of the offending frame.
package session
