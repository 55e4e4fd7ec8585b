// SPDX-License-Identifier: EPL-2.0

package bgmix_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/bgmix"
	"github.com/ik5/bgmix/internal/audiotest"
	"github.com/ik5/bgmix/session"
)

// Example mixes three microphone frames over a constant music bed.
func Example() {
	music := audiotest.NewConstantSource(48000, 1, 4, 2.0)

	track, err := bgmix.LoadTrack(music)
	if err != nil {
		fmt.Println(err)
		return
	}

	s, _ := session.New(session.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	defer s.Close()

	ctx := context.Background()
	_ = s.SetBackgroundTrack(ctx, track)

	mic := audiotest.NewSliceFrameSource(audiotest.Frames(3, 48000, 2, 4, 1.0)...)
	sink := &audiotest.RecordingSink{}

	_ = s.Start(ctx, mic, sink)
	if err := s.Wait(ctx); err != nil {
		fmt.Println(err)
		return
	}

	out := sink.Frames()
	fmt.Printf("%d frames, first sample %.1f, cursor %d, state %s\n",
		len(out), out[0].Channels[0][0], s.Cursor(), s.State())
	// Output: 3 frames, first sample 1.3, cursor 0, state stopped
}
