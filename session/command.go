// SPDX-License-Identifier: EPL-2.0

package session

import "github.com/ik5/bgmix/audio"

// Command is one of SetTrack, Start or Abort.
type Command interface {
	command()
}

// SetTrack installs Track as the background music and rewinds the cursor.
// A nil Track switches the mixer to passthrough.
type SetTrack struct {
	Track *audio.Track
}

// Start begins moving frames from Source to Sink.
type Start struct {
	Source audio.FrameSource
	Sink   audio.FrameSink
}

// Abort stops the running pipeline.
type Abort struct{}

func (SetTrack) command() {}
func (Start) command()    {}
func (Abort) command()    {}
